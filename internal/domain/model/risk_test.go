package model_test

import (
	"errors"
	"testing"

	"github.com/okian/disasterdash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseRiskTier(t *testing.T) {
	Convey("Given selector labels", t, func() {
		Convey("When parsing the known labels", func() {
			Convey("Then each maps to its tier regardless of case", func() {
				for label, want := range map[string]model.RiskTier{
					"":        model.RiskAll,
					"All":     model.RiskAll,
					"low":     model.RiskLow,
					" Medium": model.RiskMedium,
					"HIGH":    model.RiskHigh,
				} {
					got, err := model.ParseRiskTier(label)
					So(err, ShouldBeNil)
					So(got, ShouldEqual, want)
				}
			})
		})

		Convey("When parsing an unknown label", func() {
			_, err := model.ParseRiskTier("extreme")

			Convey("Then it should return ErrUnknownRiskTier", func() {
				So(errors.Is(err, model.ErrUnknownRiskTier), ShouldBeTrue)
			})
		})

		Convey("When rendering labels back", func() {
			Convey("Then the options keep display order", func() {
				labels := make([]string, 0, len(model.RiskOptions))
				for _, r := range model.RiskOptions {
					labels = append(labels, r.String())
				}
				So(labels, ShouldResemble, []string{"All", "Low", "Medium", "High"})
			})
		})
	})
}

func TestRiskFromCode(t *testing.T) {
	Convey("Given stored risk codes", t, func() {
		Convey("When the code is within 0..3", func() {
			r, err := model.RiskFromCode(3)

			Convey("Then it maps directly", func() {
				So(err, ShouldBeNil)
				So(r, ShouldEqual, model.RiskHigh)
			})
		})

		Convey("When the code is out of range", func() {
			_, err := model.RiskFromCode(4)

			Convey("Then it should fail", func() {
				So(errors.Is(err, model.ErrUnknownRiskTier), ShouldBeTrue)
			})
		})
	})
}

func TestRiskTier_Narrows(t *testing.T) {
	Convey("Given every risk tier", t, func() {
		Convey("Then only concrete tiers narrow a selection", func() {
			So(model.RiskAll.Narrows(), ShouldBeFalse)
			So(model.RiskUnset.Narrows(), ShouldBeFalse)
			So(model.RiskLow.Narrows(), ShouldBeTrue)
			So(model.RiskMedium.Narrows(), ShouldBeTrue)
			So(model.RiskHigh.Narrows(), ShouldBeTrue)
		})

		Convey("Then the zero selection applies no risk filter", func() {
			So(model.Selection{}.Risk.Narrows(), ShouldBeFalse)
		})
	})
}

func TestSelection_HasState(t *testing.T) {
	Convey("Given selections", t, func() {
		So(model.Selection{Year: 2022}.HasState(), ShouldBeFalse)
		So(model.Selection{Year: 2022, State: "Texas"}.HasState(), ShouldBeTrue)
	})
}
