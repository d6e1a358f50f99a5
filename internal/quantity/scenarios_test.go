package quantity_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/unitlab/internal/dimension"
	"github.com/san-kum/unitlab/internal/measure"
	"github.com/san-kum/unitlab/internal/physics"
	"github.com/san-kum/unitlab/internal/quantity"
	"github.com/san-kum/unitlab/internal/unit"
)

var _ = Describe("Quantity", func() {
	Describe("free fall", func() {
		It("computes sqrt(2gh) in metres per second", func() {
			g, err := quantity.New[quantity.Acceleration](9.808, unit.MetresPerSquareSecond)
			Expect(err).NotTo(HaveOccurred())
			h, err := quantity.New[quantity.Length](400.0, unit.Centi(unit.Metre))
			Expect(err).NotTo(HaveOccurred())

			hm, err := h.To(unit.Metre)
			Expect(err).NotTo(HaveOccurred())
			v, err := g.Multiply(hm).Scale(2).Root(2)
			Expect(err).NotTo(HaveOccurred())

			speed, err := quantity.As[quantity.Velocity](v)
			Expect(err).NotTo(HaveOccurred())
			got, err := speed.ValueIn(unit.MetresPerSecond)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeNumerically("~", 8.8579907428265017350882265621754, 1e-15))
		})

		It("rejects the root while the height is still in centimetres", func() {
			g := quantity.Must(quantity.New[quantity.Acceleration](9.808, unit.MetresPerSquareSecond))
			h := quantity.Must(quantity.New[quantity.Length](400.0, unit.Centimetre))

			_, err := g.Multiply(h).Root(2)
			Expect(err).To(MatchError(measure.ErrArithmetic))
		})
	})

	Describe("kilometre identities", func() {
		It("builds the same unit from integer, float and prefix factors", func() {
			a := unit.Must(unit.Metre.Times(float64(int64(1000))))
			b := unit.Kilo(unit.Metre)
			c := unit.Must(unit.Metre.Times(1000.0))

			for _, u := range []*unit.Unit{a, b, c} {
				Expect(u.String()).To(Equal("km"))
				for _, w := range []*unit.Unit{a, b, c} {
					conv, err := unit.ConverterTo(context.Background(), u, w)
					Expect(err).NotTo(HaveOccurred())
					Expect(conv.IsIdentity()).To(BeTrue())
				}
			}
		})
	})

	Describe("equality", func() {
		It("treats 4.0 m and 4 m as equal", func() {
			a := quantity.Must(quantity.New[quantity.Length](4.0, unit.Metre))
			b := quantity.Must(quantity.New[quantity.Length](4, unit.Metre))
			Expect(a.Equal(b)).To(BeTrue())
			Expect(a.Hash()).To(Equal(b.Hash()))
		})

		It("is unit sensitive while comparison is not", func() {
			a := quantity.Must(quantity.New[quantity.Length](1, unit.Kilometre))
			b := quantity.Must(quantity.New[quantity.Length](1000, unit.Metre))
			Expect(a.Equal(b)).To(BeFalse())

			c, err := a.Compare(b)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal(0))

			c, err = b.Compare(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal(0))
		})

		DescribeTable("hash agrees with Equal",
			func(v float64, u *unit.Unit) {
				a := quantity.Must(quantity.New[quantity.Any](v, u))
				b := quantity.Must(quantity.New[quantity.Any](v, u.Multiply(unit.One)))
				Expect(a.Equal(b)).To(BeTrue())
				Expect(a.Hash()).To(Equal(b.Hash()))
			},
			Entry("metre", 1.5, unit.Metre),
			Entry("newton", -3.0, unit.Newton),
			Entry("velocity", 0.0, unit.MetresPerSecond),
			Entry("celsius", 21.5, unit.Celsius),
		)
	})

	Describe("construction", func() {
		It("rejects a unit of the wrong dimension", func() {
			_, err := quantity.New[quantity.Mass](1, unit.Metre)
			Expect(err).To(MatchError(measure.ErrDimensionMismatch))
		})

		It("rejects conversion between length and mass", func() {
			q := quantity.Must(quantity.New[quantity.Length](1, unit.Metre))
			_, err := q.ValueIn(unit.Kilogram)
			Expect(err).To(MatchError(measure.ErrIncommensurable))
		})
	})

	Describe("scoped physical model", func() {
		It("changes the dimension of the metre only inside the scope", func() {
			ctx := context.Background()
			Expect(unit.Dimension(ctx, unit.Metre).Equal(dimension.Length)).To(BeTrue())

			err := physics.Within(ctx, physics.Relativistic, func(ctx context.Context) error {
				Expect(unit.Dimension(ctx, unit.Metre).Equal(dimension.Time)).To(BeTrue())
				return nil
			})
			Expect(err).NotTo(HaveOccurred())

			Expect(unit.Dimension(ctx, unit.Metre).Equal(dimension.Length)).To(BeTrue())
		})

		It("restores the previous model when the scope fails", func() {
			ctx := physics.Select(context.Background(), physics.Relativistic)
			err := physics.Within(ctx, physics.Standard, func(ctx context.Context) error {
				return measure.ErrArithmetic
			})
			Expect(err).To(MatchError(measure.ErrArithmetic))
			Expect(physics.Active(ctx)).To(Equal(physics.Relativistic))
		})
	})
})
