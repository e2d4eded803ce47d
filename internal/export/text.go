package export

import (
	"bufio"
	"io"
	"strconv"
)

// WriteText writes one value per line in fixed-point notation with six decimals.
func WriteText(w io.Writer, c []float64) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for _, v := range c {
		buf = strconv.AppendFloat(buf[:0], v, 'f', 6, 64)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
