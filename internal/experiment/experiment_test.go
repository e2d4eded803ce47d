package experiment_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/diffsim/internal/config"
	"github.com/san-kum/diffsim/internal/dynamo"
	"github.com/san-kum/diffsim/internal/experiment"
)

var _ = Describe("Registry", func() {
	var r *experiment.Registry

	BeforeEach(func() {
		r = experiment.NewRegistry()
	})

	It("lists the built-in profiles", func() {
		Expect(r.ListProfiles()).To(Equal([]string{"step", "threshold"}))
	})

	It("builds every registered metric", func() {
		ms := r.DefaultMetrics(0.5)
		Expect(ms).To(HaveLen(len(r.ListMetrics())))

		names := make([]string, 0, len(ms))
		for _, m := range ms {
			names = append(names, m.Name())
		}
		Expect(names).To(ConsistOf("boundary_drift", "mass", "mass_drift", "max_curvature", "stability"))
	})

	It("rejects unknown metrics", func() {
		_, err := r.GetMetric("entropy", 1)
		Expect(err).To(MatchError(ContainSubstring("entropy")))
	})

	It("accepts new profiles without touching the driver", func() {
		r.RegisterProfile("flat", func(g dynamo.Grid) dynamo.Field {
			c := make(dynamo.Field, g.Len())
			for i := range c {
				c[i] = 1
			}
			return c
		})
		Expect(r.ListProfiles()).To(ContainElement("flat"))

		cfg := config.DefaultConfig()
		cfg.Profile = "flat"
		cfg.Steps = 10

		exp := experiment.New(cfg)
		Expect(exp.Setup(r, nil)).To(Succeed())

		result, err := exp.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Final).To(HaveEach(1.0))
	})
})

var _ = Describe("Experiment", func() {
	var r *experiment.Registry

	BeforeEach(func() {
		r = experiment.NewRegistry()
	})

	It("refuses to run before setup", func() {
		_, err := experiment.New(config.DefaultConfig()).Run(context.Background())
		Expect(err).To(HaveOccurred())
	})

	It("reports metrics from a short run", func() {
		exp := experiment.New(config.GetPreset("short"))
		Expect(exp.Setup(r, r.DefaultMetrics(0.5))).To(Succeed())

		result, err := exp.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(result.StepsTaken).To(Equal(500))
		Expect(result.Metrics).To(HaveKeyWithValue("boundary_drift", 0.0))
		Expect(result.Metrics).To(HaveKeyWithValue("stability", 1.0))
		Expect(result.Metrics["max_curvature"]).To(BeNumerically("<", 0.5))
	})

	It("fails setup on an unknown profile", func() {
		cfg := config.DefaultConfig()
		cfg.Profile = "triangle"

		err := experiment.New(cfg).Setup(r, nil)
		Expect(err).To(MatchError(dynamo.ErrUnsupportedProfile))
		Expect(err.Error()).To(ContainSubstring(`"triangle"`))
	})

	It("fails setup on invalid parameters", func() {
		cfg := config.DefaultConfig()
		cfg.Dx = 0

		Expect(experiment.New(cfg).Setup(r, nil)).To(MatchError(dynamo.ErrInvalidParameter))
	})

	It("does not share configuration with the caller", func() {
		cfg := config.DefaultConfig()
		exp := experiment.New(cfg)
		cfg.Steps = 1
		Expect(exp.Config().Steps).To(Equal(config.DefaultSteps))
	})
})
