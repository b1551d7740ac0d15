package repository_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/disasterdash/internal/adapters/repository"
	"github.com/okian/disasterdash/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

const header = "Year,State Name,Total Deaths,Total Damage ('000 US$),Total Disasters,No. Injured,Risk Level\n"

func TestReadCSV(t *testing.T) {
	Convey("Given a merged disaster CSV", t, func() {
		ctx := context.Background()

		Convey("When every column is well formed", func() {
			data := header +
				"2022,Texas,50,1000.4,3,10,\n" +
				"2022,Ohio,20,500,1,5,\n" +
				"2024,Texas,4.0,,1,0,1.0\n" +
				"2024,Texas,9,,2,0,3\n"
			table, err := repository.ReadCSV(ctx, strings.NewReader(data))

			Convey("Then rows are parsed in file order", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 4)
				rows := table.Records()
				So(rows[0], ShouldResemble, model.Record{
					Year: 2022, State: "Texas", Deaths: 50, Damage: 1000.4, Disasters: 3, Injured: 10,
				})
				So(rows[2].Deaths, ShouldEqual, int64(4))
				So(rows[2].Damage, ShouldEqual, 0.0)
				So(rows[2].Risk, ShouldEqual, model.RiskLow)
				So(rows[3].Risk, ShouldEqual, model.RiskHigh)
			})

			Convey("And years are distinct and ascending", func() {
				So(table.Years(), ShouldResemble, []int{2022, 2024})
				latest, ok := table.LatestYear()
				So(ok, ShouldBeTrue)
				So(latest, ShouldEqual, 2024)
				So(table.HasYear(2023), ShouldBeFalse)
			})
		})

		Convey("When columns are reordered and extra columns present", func() {
			data := "Risk Level,Notes,No. Injured,Total Disasters,Total Damage ('000 US$),Total Deaths,State Name,Year\n" +
				"2,x,1,1,10,3,Ohio,2024\n"
			table, err := repository.ReadCSV(ctx, strings.NewReader(data))

			Convey("Then columns are matched by name", func() {
				So(err, ShouldBeNil)
				r := table.Records()[0]
				So(r.State, ShouldEqual, "Ohio")
				So(r.Year, ShouldEqual, 2024)
				So(r.Risk, ShouldEqual, model.RiskMedium)
				So(r.Deaths, ShouldEqual, int64(3))
			})
		})

		Convey("When a delimiter option is given", func() {
			data := strings.ReplaceAll(header, ",", ";") + "2022;Texas;1;2;3;4;\n"
			table, err := repository.ReadCSV(ctx, strings.NewReader(data), repository.WithDelimiter(';'))

			Convey("Then the file is split on it", func() {
				So(err, ShouldBeNil)
				So(table.Records()[0].Injured, ShouldEqual, int64(4))
			})
		})

		Convey("When a required column is missing", func() {
			_, err := repository.ReadCSV(ctx, strings.NewReader("Year,State Name\n2022,Texas\n"))

			Convey("Then it should return ErrMissingColumn", func() {
				So(errors.Is(err, repository.ErrMissingColumn), ShouldBeTrue)
			})
		})

		Convey("When a number is malformed", func() {
			_, err := repository.ReadCSV(ctx, strings.NewReader(header+"2022,Texas,many,1,1,1,\n"))

			Convey("Then it should return ErrMalformed with the line", func() {
				So(errors.Is(err, repository.ErrMalformed), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "line 2")
			})
		})

		Convey("When a risk code is out of range", func() {
			_, err := repository.ReadCSV(ctx, strings.NewReader(header+"2024,Texas,1,1,1,1,7\n"))

			Convey("Then it should be rejected", func() {
				So(errors.Is(err, repository.ErrMalformed), ShouldBeTrue)
			})
		})

		Convey("When the file has only a header", func() {
			_, err := repository.ReadCSV(ctx, strings.NewReader(header))

			Convey("Then it should return ErrEmpty", func() {
				So(errors.Is(err, repository.ErrEmpty), ShouldBeTrue)
			})
		})
	})
}

func TestLoadCSV(t *testing.T) {
	Convey("Given a file on disk", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		Convey("When the file exists", func() {
			path := filepath.Join(dir, "merged.csv")
			So(os.WriteFile(path, []byte(header+"2023,Ohio,1,2,3,4,\n"), 0o600), ShouldBeNil)
			table, err := repository.LoadCSV(ctx, path)

			Convey("Then it loads", func() {
				So(err, ShouldBeNil)
				So(table.Len(), ShouldEqual, 1)
			})
		})

		Convey("When the file does not exist", func() {
			_, err := repository.LoadCSV(ctx, filepath.Join(dir, "missing.csv"))

			Convey("Then it should return ErrLoad", func() {
				So(errors.Is(err, repository.ErrLoad), ShouldBeTrue)
			})
		})
	})
}

func TestStates(t *testing.T) {
	Convey("Given rows with placeholders and duplicates", t, func() {
		rows := []model.Record{
			{State: "Texas"}, {State: "0"}, {State: "Alabama"}, {State: ""}, {State: "Texas"},
		}

		Convey("Then states are distinct, sorted and cleaned", func() {
			So(repository.States(rows), ShouldResemble, []string{"Alabama", "Texas"})
		})
	})
}

func TestNewTable(t *testing.T) {
	Convey("Given an empty table", t, func() {
		table := repository.NewTable(nil)

		Convey("Then it has no latest year", func() {
			_, ok := table.LatestYear()
			So(ok, ShouldBeFalse)
			So(table.Len(), ShouldEqual, 0)
		})
	})

	Convey("Given records passed to NewTable", t, func() {
		src := []model.Record{{Year: 2020, State: "Ohio"}}
		table := repository.NewTable(src)
		src[0].State = "Changed"

		Convey("Then the table keeps its own copy", func() {
			So(table.Records()[0].State, ShouldEqual, "Ohio")
		})
	})
}
