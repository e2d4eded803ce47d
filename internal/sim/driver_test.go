package sim_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/sim"
)

var _ = Describe("Simulator", func() {
	Context("with the reference step scenario", Ordered, func() {
		var result *sim.Result

		BeforeAll(func() {
			var err error
			result, err = sim.New(nil).Run(context.Background(), sim.DefaultConfig())
			Expect(err).NotTo(HaveOccurred())
		})

		It("takes every step at the stable time step", func() {
			Expect(result.StepsTaken).To(Equal(5000))
			Expect(result.Dt).To(BeNumerically("~", 0.00125, 1e-15))
			Expect(result.Final).To(HaveLen(600))
		})

		It("keeps the boundary values fixed", func() {
			Expect(result.Final[0]).To(Equal(result.Initial[0]))
			Expect(result.Final[599]).To(Equal(result.Initial[599]))
		})

		It("is monotonically non-decreasing from left to right", func() {
			for i := 1; i < len(result.Final); i++ {
				Expect(result.Final[i]).To(BeNumerically(">=", result.Final[i-1]-1e-12), "index %d", i)
			}
		})

		It("is symmetric about the domain midpoint", func() {
			mid := len(result.Final) / 2
			Expect(result.Final[mid]).To(BeNumerically("~", 0.5, 1e-6))
			for k := 1; k < mid; k++ {
				left := 0.5 - result.Final[mid-k]
				right := result.Final[mid+k] - 0.5
				Expect(right).To(BeNumerically("~", left, 1e-3), "offset %d", k)
			}
		})

		It("has smoothed the step", func() {
			Expect(result.Final.MaxCurvature()).To(BeNumerically("<", result.Initial.MaxCurvature()/10))
		})
	})

	Context("with invalid input", func() {
		It("rejects an unknown profile by name", func() {
			cfg := sim.DefaultConfig()
			cfg.Profile = "triangle"

			result, err := sim.New(nil).Run(context.Background(), cfg)
			Expect(result).To(BeNil())
			Expect(err).To(MatchError(dynamo.ErrUnsupportedProfile))
			Expect(err.Error()).To(ContainSubstring("triangle"))
		})

		DescribeTable("rejects non-positive parameters",
			func(mod func(*sim.Config), name string) {
				cfg := sim.DefaultConfig()
				mod(&cfg)

				_, err := sim.New(nil).Run(context.Background(), cfg)
				Expect(err).To(MatchError(dynamo.ErrInvalidParameter))

				var pe *dynamo.ParameterError
				Expect(errors.As(err, &pe)).To(BeTrue())
				Expect(pe.Name).To(Equal(name))
			},
			Entry("dx", func(c *sim.Config) { c.Dx = 0 }, "dx"),
			Entry("length", func(c *sim.Config) { c.Length = -300 }, "length"),
			Entry("diffusivity", func(c *sim.Config) { c.Diffusivity = 0 }, "diffusivity"),
		)
	})
})
