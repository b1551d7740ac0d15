package aggregate_test

import (
	"errors"
	"testing"

	"github.com/okian/disasterdash/internal/domain/aggregate"
	"github.com/okian/disasterdash/internal/domain/filter"
	"github.com/okian/disasterdash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func rows2022() []model.Record {
	return []model.Record{
		{Year: 2022, State: "Texas", Deaths: 50, Damage: 1000, Disasters: 3, Injured: 10},
		{Year: 2022, State: "Ohio", Deaths: 20, Damage: 500, Disasters: 1, Injured: 5},
	}
}

func TestAggregate(t *testing.T) {
	Convey("Given two rows for 2022", t, func() {
		rows := rows2022()

		Convey("When summing", func() {
			Convey("Then totals add up", func() {
				So(aggregate.Aggregate(rows, aggregate.Deaths, aggregate.Sum), ShouldEqual, 70.0)
				So(aggregate.Aggregate(rows, aggregate.Disasters, aggregate.Sum), ShouldEqual, 4.0)
				So(aggregate.Aggregate(rows, aggregate.Damage, aggregate.Sum), ShouldEqual, 1500.0)
				So(aggregate.Aggregate(rows, aggregate.Injured, aggregate.Sum), ShouldEqual, 15.0)
			})
		})

		Convey("When averaging", func() {
			Convey("Then the mean is sum over count", func() {
				So(aggregate.Aggregate(rows, aggregate.Deaths, aggregate.Mean), ShouldEqual, 35.0)
			})
		})

		Convey("When narrowing to Texas", func() {
			texas := filter.ByState(rows, "Texas")

			Convey("Then only Texas counts", func() {
				So(aggregate.Aggregate(texas, aggregate.Deaths, aggregate.Sum), ShouldEqual, 50.0)
			})
		})

		Convey("When the subset is empty", func() {
			empty := filter.ByState(rows, "Maine")

			Convey("Then every field aggregates to zero in both modes", func() {
				for _, f := range aggregate.Fields {
					So(aggregate.Aggregate(empty, f, aggregate.Sum), ShouldEqual, 0.0)
					So(aggregate.Aggregate(empty, f, aggregate.Mean), ShouldEqual, 0.0)
				}
			})
		})
	})
}

func TestFormat(t *testing.T) {
	Convey("Given numbers to display", t, func() {
		Convey("When grouped", func() {
			So(aggregate.Format(1234567, aggregate.Grouped), ShouldEqual, "1,234,567")
			So(aggregate.Format(70, aggregate.Grouped), ShouldEqual, "70")
		})

		Convey("When plain", func() {
			So(aggregate.Format(1234567, aggregate.Plain), ShouldEqual, "1234567")
		})

		Convey("When rounding halves", func() {
			Convey("Then ties go to the even neighbour", func() {
				So(aggregate.Format(2.5, aggregate.Plain), ShouldEqual, "2")
				So(aggregate.Format(3.5, aggregate.Plain), ShouldEqual, "4")
				So(aggregate.Format(2.6, aggregate.Plain), ShouldEqual, "3")
			})
		})
	})
}

func TestSummary(t *testing.T) {
	Convey("Given two rows for 2022", t, func() {
		metrics := aggregate.Summary(rows2022(), aggregate.Sum)

		Convey("Then three metrics are produced in display order", func() {
			So(len(metrics), ShouldEqual, 3.0)
			So(metrics[0].Title, ShouldEqual, "Total Deaths")
			So(metrics[0].Display, ShouldEqual, "70")
			So(metrics[1].Title, ShouldEqual, "Total Damage ('000 US$)")
			So(metrics[1].Display, ShouldEqual, "1,500")
			So(metrics[2].Title, ShouldEqual, "Total Disasters")
			So(metrics[2].Display, ShouldEqual, "4")
		})

		Convey("And All covers every field", func() {
			all := aggregate.All(rows2022(), aggregate.Mean)
			So(len(all), ShouldEqual, len(aggregate.Fields))
			So(all[3].Title, ShouldEqual, "No. Injured")
			So(all[3].Display, ShouldEqual, "8")
		})
	})
}

func TestParseMode(t *testing.T) {
	Convey("Given mode strings", t, func() {
		m, err := aggregate.ParseMode("")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, aggregate.Sum)

		m, err = aggregate.ParseMode("Mean")
		So(err, ShouldBeNil)
		So(m, ShouldEqual, aggregate.Mean)

		_, err = aggregate.ParseMode("median")
		So(errors.Is(err, aggregate.ErrUnknownMode), ShouldBeTrue)
	})
}
