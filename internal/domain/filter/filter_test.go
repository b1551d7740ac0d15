package filter_test

import (
	"testing"

	"github.com/okian/disasterdash/internal/domain/filter"
	"github.com/okian/disasterdash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleRows() []model.Record {
	return []model.Record{
		{Year: 2022, State: "Texas", Deaths: 50, Damage: 1000, Disasters: 3, Injured: 10},
		{Year: 2022, State: "Ohio", Deaths: 20, Damage: 500, Disasters: 1, Injured: 5},
		{Year: 2023, State: "Texas", Deaths: 7, Damage: 80, Disasters: 2, Injured: 1},
		{Year: 2024, State: "Texas", Deaths: 4, Disasters: 1, Risk: model.RiskLow},
		{Year: 2024, State: "Texas", Deaths: 9, Disasters: 2, Risk: model.RiskHigh},
		{Year: 2024, State: "Ohio", Deaths: 1, Disasters: 1, Risk: model.RiskMedium},
	}
}

func TestByYear(t *testing.T) {
	Convey("Given a table spanning several years", t, func() {
		rows := sampleRows()

		Convey("When filtering by a present year", func() {
			got := filter.ByYear(rows, 2022)

			Convey("Then only that year's rows remain", func() {
				So(len(got), ShouldEqual, 2)
				for _, r := range got {
					So(r.Year, ShouldEqual, 2022)
				}
			})
		})

		Convey("When filtering by an absent year", func() {
			Convey("Then the subset is empty", func() {
				So(filter.ByYear(rows, 1999), ShouldBeEmpty)
			})
		})

		Convey("When the input is filtered", func() {
			_ = filter.ByYear(rows, 2023)

			Convey("Then the input is left untouched", func() {
				So(rows, ShouldResemble, sampleRows())
			})
		})
	})
}

func TestByState(t *testing.T) {
	Convey("Given the 2022 rows", t, func() {
		rows := filter.ByYear(sampleRows(), 2022)

		Convey("When the state is empty", func() {
			Convey("Then the input is returned unchanged", func() {
				So(filter.ByState(rows, ""), ShouldResemble, rows)
			})
		})

		Convey("When the state is present", func() {
			got := filter.ByState(rows, "Texas")

			Convey("Then only that state remains", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].Deaths, ShouldEqual, int64(50))
			})
		})

		Convey("When the state is not in that year's data", func() {
			Convey("Then the subset is empty", func() {
				So(filter.ByState(rows, "Maine"), ShouldBeEmpty)
			})
		})
	})
}

func TestByRiskTier(t *testing.T) {
	Convey("Given the full table", t, func() {
		rows := sampleRows()

		Convey("When the tier is All", func() {
			Convey("Then nothing is removed", func() {
				So(filter.ByRiskTier(rows, model.RiskAll), ShouldResemble, rows)
			})
		})

		Convey("When the tier is concrete", func() {
			for tier, deaths := range map[model.RiskTier]int64{
				model.RiskLow:    4,
				model.RiskMedium: 1,
				model.RiskHigh:   9,
			} {
				got := filter.ByRiskTier(rows, tier)

				So(len(got), ShouldEqual, 1)
				So(got[0].Risk, ShouldEqual, tier)
				So(got[0].Deaths, ShouldEqual, deaths)
			}
		})

		Convey("When applied to historical years", func() {
			got := filter.ByRiskTier(filter.ByYear(rows, 2022), model.RiskLow)

			Convey("Then unrelated years are never included", func() {
				So(got, ShouldBeEmpty)
			})
		})
	})
}

func TestApply(t *testing.T) {
	Convey("Given a selection", t, func() {
		rows := sampleRows()

		Convey("When selecting the prediction year with a Low tier", func() {
			got := filter.Apply(rows, model.Selection{Year: 2024, Risk: model.RiskLow})

			Convey("Then only the Low Texas row remains", func() {
				So(len(got), ShouldEqual, 1)
				So(got[0].State, ShouldEqual, "Texas")
				So(got[0].Deaths, ShouldEqual, int64(4))
			})
		})

		Convey("When selecting a state and all tiers", func() {
			got := filter.Apply(rows, model.Selection{Year: 2024, State: "Texas", Risk: model.RiskAll})

			Convey("Then both Texas prediction rows remain", func() {
				So(len(got), ShouldEqual, 2)
			})
		})

		Convey("When the selection leaves the risk tier unset", func() {
			got := filter.Apply(rows, model.Selection{Year: 2024})

			Convey("Then every tier of the year is kept", func() {
				So(got, ShouldResemble, filter.ByYear(rows, 2024))
				So(len(got), ShouldEqual, 3)
			})
		})

		Convey("When the filter order is swapped", func() {
			manual := filter.ByYear(filter.ByState(filter.ByRiskTier(rows, model.RiskHigh), "Texas"), 2024)
			got := filter.Apply(rows, model.Selection{Year: 2024, State: "Texas", Risk: model.RiskHigh})

			Convey("Then the result is the same", func() {
				So(got, ShouldResemble, manual)
			})
		})
	})
}
