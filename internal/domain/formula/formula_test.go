package formula_test

import (
	"errors"
	"testing"

	"github.com/okian/batting/internal/domain/formula"
	"github.com/okian/batting/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func seasonRow(ab, h, doubles, triples, hr, bb string) types.SeasonRow {
	return types.SeasonRow{
		"playerID": "p1", "yearID": "2000",
		"AB": ab, "H": h, "2B": doubles, "3B": triples, "HR": hr, "BB": bb,
	}
}

func TestBaseFormulas(t *testing.T) {
	fields := types.DefaultFields()

	Convey("Given a qualified season row", t, func() {
		row := seasonRow("600", "200", "30", "5", "10", "50")

		Convey("When computing batting average", func() {
			v, err := formula.BattingAverage().Compute(fields, row)

			Convey("Then it should be hits over at-bats", func() {
				So(err, ShouldBeNil)
				So(v, ShouldAlmostEqual, 200.0/600.0, 1e-12)
			})
		})

		Convey("When computing on-base percentage", func() {
			v, err := formula.OnBasePercentage().Compute(fields, row)

			Convey("Then it should include walks on both sides", func() {
				So(err, ShouldBeNil)
				So(v, ShouldAlmostEqual, 250.0/650.0, 1e-12)
			})
		})

		Convey("When computing slugging percentage", func() {
			v, err := formula.SluggingPercentage().Compute(fields, row)

			Convey("Then it should weight each hit by its bases", func() {
				// singles = 200 - 30 - 5 - 10 = 155
				So(err, ShouldBeNil)
				So(v, ShouldAlmostEqual, (155.0+60+15+40)/600.0, 1e-12)
			})
		})

		Convey("When computing on-base plus slugging", func() {
			v, err := formula.OnBasePlusSlugging().Compute(fields, row)

			Convey("Then it should add both components", func() {
				So(err, ShouldBeNil)
				So(v, ShouldAlmostEqual, 250.0/650.0+270.0/600.0, 1e-12)
			})
		})
	})

	Convey("Given a row below the at-bat threshold", t, func() {
		row := seasonRow("400", "200", "50", "10", "40", "100")

		Convey("Then every ratio formula should return zero", func() {
			for _, f := range []formula.Formula{
				formula.BattingAverage(),
				formula.OnBasePercentage(),
				formula.SluggingPercentage(),
				formula.OnBasePlusSlugging(),
			} {
				v, err := f.Compute(fields, row)
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0)
			}
		})
	})

	Convey("Given a row exactly at the threshold", t, func() {
		row := seasonRow("500", "150", "0", "0", "0", "0")

		Convey("Then it should be eligible", func() {
			v, err := formula.BattingAverage().Compute(fields, row)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 0.3, 1e-12)
		})
	})

	Convey("Given a custom minimum at-bats", t, func() {
		row := seasonRow("400", "200", "0", "0", "0", "0")

		Convey("When the threshold is lowered", func() {
			v, err := formula.BattingAverage(formula.WithMinimumAtBats(100)).Compute(fields, row)

			Convey("Then the row should qualify", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0.5)
			})
		})

		Convey("When the threshold is zero and there are no at-bats", func() {
			v, err := formula.BattingAverage(formula.WithMinimumAtBats(0)).
				Compute(fields, seasonRow("0", "0", "0", "0", "0", "0"))

			Convey("Then it should return zero rather than NaN", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0)
			})
		})

		Convey("When the threshold is negative", func() {
			v, err := formula.BattingAverage(formula.WithMinimumAtBats(-1)).Compute(fields, row)

			Convey("Then the default should be kept", func() {
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 0)
			})
		})
	})

	Convey("Given a career row", t, func() {
		row := types.NewCareerRow("playerID", "p1")
		row.Add("AB", 600)
		row.Add("H", 200)

		Convey("Then formulas should read the summed totals", func() {
			v, err := formula.BattingAverage().Compute(fields, row)
			So(err, ShouldBeNil)
			So(v, ShouldAlmostEqual, 1.0/3.0, 1e-12)
		})
	})
}

func TestFormulaErrors(t *testing.T) {
	fields := types.DefaultFields()

	Convey("Given a row missing walks", t, func() {
		row := seasonRow("600", "200", "30", "5", "10", "50")
		delete(row, "BB")

		Convey("Then on-base percentage should report the missing field", func() {
			_, err := formula.OnBasePercentage().Compute(fields, row)
			So(errors.Is(err, types.ErrMissingField), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "BB")
		})

		Convey("And batting average should still compute", func() {
			_, err := formula.BattingAverage().Compute(fields, row)
			So(err, ShouldBeNil)
		})
	})

	Convey("Given an ineligible row with a corrupt hits value", t, func() {
		row := seasonRow("10", "x", "0", "0", "0", "0")

		Convey("Then the corruption should surface instead of a zero", func() {
			_, err := formula.BattingAverage().Compute(fields, row)
			So(errors.Is(err, types.ErrUnparseableNumber), ShouldBeTrue)
		})
	})

	Convey("Given a composite whose part fails", t, func() {
		failing := formula.Func(func(types.Fields, types.Row) (float64, error) {
			return 0, types.ErrMissingField
		})
		sum := formula.Sum(formula.BattingAverage(), failing)

		Convey("Then the composite should fail", func() {
			_, err := sum.Compute(fields, seasonRow("600", "200", "0", "0", "0", "0"))
			So(errors.Is(err, types.ErrMissingField), ShouldBeTrue)
		})
	})
}

func TestByName(t *testing.T) {
	fields := types.DefaultFields()
	row := seasonRow("600", "200", "30", "5", "10", "50")

	Convey("Given the registered metric names", t, func() {
		Convey("Then each should resolve to the matching formula", func() {
			cases := map[string]formula.Formula{
				"avg":   formula.BattingAverage(),
				"OBP":   formula.OnBasePercentage(),
				" slg ": formula.SluggingPercentage(),
				"ops":   formula.OnBasePlusSlugging(),
			}
			for name, want := range cases {
				got, err := formula.ByName(name)
				So(err, ShouldBeNil)

				gv, _ := got.Compute(fields, row)
				wv, _ := want.Compute(fields, row)
				So(gv, ShouldEqual, wv)
			}
		})

		Convey("Then options should be forwarded", func() {
			f, err := formula.ByName("avg", formula.WithMinimumAtBats(700))
			So(err, ShouldBeNil)
			v, _ := f.Compute(fields, row)
			So(v, ShouldEqual, 0)
		})
	})

	Convey("Given an unknown metric name", t, func() {
		f, err := formula.ByName("war")

		Convey("Then it should fail with ErrUnknownFormula", func() {
			So(f, ShouldBeNil)
			So(errors.Is(err, formula.ErrUnknownFormula), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "war")
		})
	})
}
