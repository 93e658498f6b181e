package compare_test

import (
	"testing"

	"github.com/pagepulse/pagepulse/internal/domain/compare"
	"github.com/pagepulse/pagepulse/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func snap(perf, access, best, seo int) model.Snapshot {
	return model.Snapshot{
		Performance:   perf,
		Accessibility: access,
		BestPractices: best,
		SEO:           seo,
	}
}

func TestDelta(t *testing.T) {
	Convey("Given the comparator", t, func() {
		Convey("When there is no baseline", func() {
			d := compare.Delta(snap(90, 70, 70, 70), nil)

			Convey("Then no delta is produced", func() {
				So(d, ShouldBeNil)
			})
		})

		Convey("When the latest improved on the baseline", func() {
			baseline := snap(85, 60, 70, 65)
			d := compare.Delta(snap(90, 70, 70, 70), &baseline)

			Convey("Then each category is latest minus baseline", func() {
				So(d, ShouldNotBeNil)
				So(d.Performance, ShouldEqual, 5)
				So(d.Accessibility, ShouldEqual, 10)
				So(d.BestPractices, ShouldEqual, 0)
				So(d.SEO, ShouldEqual, 5)
			})
		})

		Convey("When the latest regressed", func() {
			baseline := snap(100, 100, 100, 100)
			d := compare.Delta(snap(0, 40, 99, 100), &baseline)

			Convey("Then deltas go negative without clamping", func() {
				So(d, ShouldNotBeNil)
				So(d.Performance, ShouldEqual, -100)
				So(d.Accessibility, ShouldEqual, -60)
				So(d.BestPractices, ShouldEqual, -1)
				So(d.SEO, ShouldEqual, 0)
			})
		})

		Convey("When latest and baseline are identical", func() {
			baseline := snap(90, 70, 70, 70)
			d := compare.Delta(snap(90, 70, 70, 70), &baseline)

			Convey("Then the delta is all zeros", func() {
				So(d, ShouldNotBeNil)
				So(*d, ShouldResemble, model.Delta{})
			})
		})
	})
}
