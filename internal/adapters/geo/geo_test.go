package geo_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/disasterdash/internal/adapters/geo"
	. "github.com/smartystreets/goconvey/convey"
)

const twoStates = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"name": "Texas"},
     "geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}},
    {"type": "Feature", "properties": {"name": "Ohio"},
     "geometry": {"type": "Polygon", "coordinates": [[[2,2],[3,2],[3,3],[2,2]]]}}
  ]
}`

func TestParse(t *testing.T) {
	Convey("Given a boundary collection", t, func() {
		Convey("When every feature is named", func() {
			b, err := geo.Parse([]byte(twoStates))

			Convey("Then names are indexed in order", func() {
				So(err, ShouldBeNil)
				So(b.Len(), ShouldEqual, 2)
				So(b.Names(), ShouldResemble, []string{"Texas", "Ohio"})
				So(b.Has("Ohio"), ShouldBeTrue)
				So(b.Has("Maine"), ShouldBeFalse)
			})
		})

		Convey("When a feature has no name", func() {
			_, err := geo.Parse([]byte(`{"type":"FeatureCollection","features":[
				{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[0,0]}}]}`))

			Convey("Then it should return ErrMissingName", func() {
				So(errors.Is(err, geo.ErrMissingName), ShouldBeTrue)
			})
		})

		Convey("When the document is not GeoJSON", func() {
			_, err := geo.Parse([]byte(`not json`))

			Convey("Then it should return ErrLoad", func() {
				So(errors.Is(err, geo.ErrLoad), ShouldBeTrue)
			})
		})
	})
}

func TestClone(t *testing.T) {
	Convey("Given loaded boundaries", t, func() {
		b, err := geo.Parse([]byte(twoStates))
		So(err, ShouldBeNil)

		Convey("When a clone's properties are written", func() {
			fc := b.Clone()
			fc.Features[0].Properties["Total Deaths"] = "Total Deaths: 1"

			Convey("Then the source is unchanged", func() {
				again := b.Clone()
				_, ok := again.Features[0].Properties["Total Deaths"]
				So(ok, ShouldBeFalse)
				So(len(again.Features), ShouldEqual, 2)
			})
		})
	})
}

func TestLoad(t *testing.T) {
	Convey("Given files on disk", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		Convey("When the file exists", func() {
			path := filepath.Join(dir, "states.geojson")
			So(os.WriteFile(path, []byte(twoStates), 0o600), ShouldBeNil)
			b, err := geo.Load(ctx, path)

			Convey("Then it loads", func() {
				So(err, ShouldBeNil)
				So(b.Len(), ShouldEqual, 2)
			})
		})

		Convey("When the file is missing", func() {
			_, err := geo.Load(ctx, filepath.Join(dir, "nope.geojson"))

			Convey("Then it should return ErrLoad", func() {
				So(errors.Is(err, geo.ErrLoad), ShouldBeTrue)
			})
		})
	})
}
