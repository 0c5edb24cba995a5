package scene

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/spatial/r3"

	"qbloch/internal/qubit"
	"qbloch/internal/session"
)

func TestBuilder(t *testing.T) {
	Convey("Given a builder watching a session holding X and |0>", t, func() {
		x, _ := qubit.GateFromName("X")
		s := session.New(session.Config{Gate: x, State: qubit.NewState()})
		b := NewBuilder(s, DefaultConfig())

		Convey("It starts dirty and builds on demand", func() {
			So(b.Dirty(), ShouldBeTrue)
			sc, err := b.Scene()
			So(err, ShouldBeNil)
			So(b.Dirty(), ShouldBeFalse)
			So(vecClose(sc.From, r3.Vec{Z: 1}), ShouldBeTrue)
		})

		Convey("A session change marks it dirty and bumps the version", func() {
			b.Scene()
			v := b.Version()
			s.Apply()
			So(b.Dirty(), ShouldBeTrue)
			So(b.Version(), ShouldBeGreaterThan, v)

			sc, err := b.Scene()
			So(err, ShouldBeNil)
			So(vecClose(sc.From, r3.Vec{Z: -1}), ShouldBeTrue)
			So(sc.Trails, ShouldHaveLength, 1)
		})

		Convey("Reading twice without a change does not rebuild", func() {
			b.Scene()
			v := b.Version()
			b.Scene()
			So(b.Version(), ShouldEqual, v)
			So(b.Dirty(), ShouldBeFalse)
		})

		Convey("A new config takes effect on the next build", func() {
			cfg := DefaultConfig()
			cfg.Points = 10
			b.SetConfig(cfg)
			sc, err := b.Scene()
			So(err, ShouldBeNil)
			So(sc.Frames(), ShouldEqual, 10)
			So(b.Config().Points, ShouldEqual, 10)
		})

		Convey("A bad config is reported until it is fixed", func() {
			cfg := DefaultConfig()
			cfg.Points = 0
			b.SetConfig(cfg)
			_, err := b.Scene()
			So(err, ShouldNotBeNil)

			b.SetConfig(DefaultConfig())
			_, err = b.Scene()
			So(err, ShouldBeNil)
		})
	})
}
