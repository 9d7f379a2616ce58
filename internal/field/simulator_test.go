package field_test

import (
	"context"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/sparkfield/internal/field"
)

// circleDriver moves around the centre every frame and clicks periodically.
type circleDriver struct {
	clickEvery int
}

func (d circleDriver) Next(frame int, w, h float64) field.Input {
	a := float64(frame) * 0.1
	in := field.Input{
		Pos:  field.Vec2{X: w/2 + math.Cos(a)*w/4, Y: h/2 + math.Sin(a)*h/4},
		Move: true,
	}
	if d.clickEvery > 0 && frame%d.clickEvery == 0 {
		in.Click = true
	}
	return in
}

// heldScheduler keeps callbacks and ignores cancellation.
type heldScheduler struct {
	callbacks []func()
}

func (s *heldScheduler) RequestFrame(cb func()) field.FrameID {
	s.callbacks = append(s.callbacks, cb)
	return field.FrameID(len(s.callbacks))
}

func (s *heldScheduler) CancelFrame(field.FrameID) {}

func newSim(seed int64) (*field.Simulator, *field.FrameQueue, *field.BlankSurface) {
	q := field.NewFrameQueue()
	surf := field.NewBlankSurface()
	sim := field.NewSimulator(surf, q, rand.New(rand.NewSource(seed)), field.DefaultParams())
	return sim, q, surf
}

var _ = Describe("Simulator", func() {
	Describe("Start", func() {
		It("seeds the initial population inside the surface", func() {
			sim, q, surf := newSim(1)
			sim.Start(640, 480)

			Expect(sim.Field().Len()).To(Equal(30))
			for _, p := range sim.Field().Particles() {
				Expect(p.Pos.X).To(BeNumerically(">=", 0))
				Expect(p.Pos.X).To(BeNumerically("<", 640))
				Expect(p.Pos.Y).To(BeNumerically(">=", 0))
				Expect(p.Pos.Y).To(BeNumerically("<", 480))
			}
			Expect(q.Pending()).To(Equal(1))
			w, h := surf.Size()
			Expect([]int{w, h}).To(Equal([]int{640, 480}))
		})

		It("only resizes when called again", func() {
			sim, q, surf := newSim(1)
			sim.Start(100, 100)
			q.Pump()
			before := append([]field.Particle(nil), sim.Field().Particles()...)

			sim.Start(300, 200)

			Expect(sim.Field().Particles()).To(Equal(before))
			Expect(q.Pending()).To(Equal(1))
			w, h := surf.Size()
			Expect([]int{w, h}).To(Equal([]int{300, 200}))
		})
	})

	Describe("frames", func() {
		It("renders every particle, trail point and link", func() {
			sim, q, surf := newSim(3)
			sim.Start(400, 300)
			sim.PointerMove(200, 150)
			q.Pump()

			f := sim.Field()
			Expect(surf.Discs).To(Equal(f.Len()))
			Expect(surf.Glows).To(Equal(len(f.Trail())))
			Expect(surf.Lines).To(Equal(f.LinkCount()))
			Expect(sim.FramesRendered()).To(Equal(1))
		})

		It("skips frames while the surface has no size", func() {
			sim, q, _ := newSim(3)
			sim.Start(0, 0)

			Expect(q.Pump()).To(Equal(1))
			Expect(sim.FramesSkipped()).To(Equal(1))
			Expect(sim.FramesRendered()).To(Equal(0))
			Expect(sim.Field().Frame()).To(Equal(0))
			Expect(q.Pending()).To(Equal(1))

			sim.Resize(50, 50)
			q.Pump()
			Expect(sim.FramesRendered()).To(Equal(1))
		})

		It("keeps every age below its max life", func() {
			sim, q, _ := newSim(9)
			sim.Start(500, 500)
			d := circleDriver{clickEvery: 7}
			for i := 0; i < 300; i++ {
				in := d.Next(i, 500, 500)
				sim.PointerMove(in.Pos.X, in.Pos.Y)
				if in.Click {
					sim.PointerClick(in.Pos.X, in.Pos.Y)
				}
				q.Pump()
				for _, p := range sim.Field().Particles() {
					Expect(p.Age).To(BeNumerically(">=", 0))
					Expect(p.Age).To(BeNumerically("<", p.MaxLife))
					Expect(p.MaxLife).To(BeNumerically(">=", 30))
					Expect(p.MaxLife).To(BeNumerically("<=", 90))
				}
			}
		})
	})

	Describe("Stop", func() {
		It("is idempotent and prevents further frames", func() {
			sim, q, surf := newSim(5)
			sim.Start(200, 200)
			q.Pump()

			Expect(sim.Stop).NotTo(Panic())
			Expect(sim.Stop).NotTo(Panic())

			Expect(q.Pending()).To(Equal(0))
			Expect(q.Pump()).To(Equal(0))
			Expect(sim.FramesRendered()).To(Equal(1))
			Expect(sim.Field().Len()).To(Equal(0))
			Expect(surf.Released).To(BeTrue())
			Expect(sim.Running()).To(BeFalse())
		})

		It("ignores a stale callback the scheduler failed to cancel", func() {
			sched := &heldScheduler{}
			sim := field.NewSimulator(field.NewBlankSurface(), sched, rand.New(rand.NewSource(1)), field.DefaultParams())
			sim.Start(100, 100)
			Expect(sched.callbacks).To(HaveLen(1))

			sim.Stop()
			sched.callbacks[0]()

			Expect(sim.FramesRendered()).To(Equal(0))
			Expect(sched.callbacks).To(HaveLen(1))
		})

		It("ignores a stale callback after a restart", func() {
			sched := &heldScheduler{}
			sim := field.NewSimulator(field.NewBlankSurface(), sched, rand.New(rand.NewSource(1)), field.DefaultParams())
			sim.Start(100, 100)
			sim.Restart(100, 100)
			Expect(sched.callbacks).To(HaveLen(2))

			sched.callbacks[0]()
			Expect(sim.FramesRendered()).To(Equal(0))

			sched.callbacks[1]()
			Expect(sim.FramesRendered()).To(Equal(1))
		})

		It("drops pointer input once stopped", func() {
			sim, _, _ := newSim(5)
			sim.Start(200, 200)
			sim.Stop()
			sim.PointerClick(10, 10)
			sim.PointerMove(10, 10)
			Expect(sim.Field().Len()).To(Equal(0))
			Expect(sim.Field().Trail()).To(BeEmpty())
		})
	})

	Describe("attraction toward a cursor at the origin", func() {
		It("pulls survivors closer on average without producing NaN", func() {
			sim, q, _ := newSim(7)
			sim.Start(120, 120)

			start := make(map[uint64]float64)
			for _, p := range sim.Field().Particles() {
				start[p.ID] = p.Pos.Len()
			}

			for i := 0; i < 60; i++ {
				q.Pump()
			}

			survivors := sim.Field().Particles()
			Expect(survivors).NotTo(BeEmpty())
			var before, after float64
			for _, p := range survivors {
				Expect(p.Pos.IsValid()).To(BeTrue())
				Expect(p.Vel.IsValid()).To(BeTrue())
				before += start[p.ID]
				after += p.Pos.Len()
			}
			Expect(after).To(BeNumerically("<", before))
		})
	})
})

var _ = Describe("Run", func() {
	base := func() field.RunConfig {
		return field.RunConfig{
			Params:        field.DefaultParams(),
			Width:         800,
			Height:        600,
			Frames:        25,
			Seed:          42,
			ValidateState: true,
		}
	}

	It("is deterministic for a fixed seed", func() {
		a, err := field.Run(context.Background(), base())
		Expect(err).NotTo(HaveOccurred())
		b, err := field.Run(context.Background(), base())
		Expect(err).NotTo(HaveOccurred())

		Expect(a.Final).To(HaveLen(30))
		Expect(a.Final).To(Equal(b.Final))

		cfg := base()
		cfg.Seed = 43
		c, err := field.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(c.Final).NotTo(Equal(a.Final))
	})

	It("keeps the population bounded under steady pointer activity", func() {
		cfg := base()
		cfg.Frames = 1000
		cfg.Driver = circleDriver{clickEvery: 20}

		res, err := field.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Samples).To(HaveLen(1000))
		for _, st := range res.Samples {
			Expect(st.Population).To(BeNumerically("<", 500))
			Expect(st.MaxAgeRatio).To(BeNumerically("<", 1))
		}
	})

	It("records draw operations from the blank surface", func() {
		res, err := field.Run(context.Background(), base())
		Expect(err).NotTo(HaveOccurred())
		last := res.Samples[len(res.Samples)-1]
		Expect(last.DrawOps).To(Equal(last.Population + last.Trail + last.Links))
	})

	It("rejects bad configurations", func() {
		cfg := base()
		cfg.Frames = 0
		_, err := field.Run(context.Background(), cfg)
		Expect(err).To(MatchError(field.ErrParameterBounds))

		cfg = base()
		cfg.Width = 0
		_, err = field.Run(context.Background(), cfg)
		Expect(err).To(MatchError(field.ErrNoSurface))
	})

	It("stops on context cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		res, err := field.Run(ctx, base())
		Expect(err).To(MatchError(context.Canceled))
		Expect(res.Samples).To(BeEmpty())
	})

	It("hands the last frame to OnFinish", func() {
		cfg := base()
		var seen int
		cfg.OnFinish = func(f *field.Field) { seen = f.Len() }
		res, err := field.Run(context.Background(), cfg)
		Expect(err).NotTo(HaveOccurred())
		Expect(seen).To(Equal(len(res.Final)))
	})
})

var _ = Describe("Ensemble", func() {
	It("returns results in seed order", func() {
		cfg := field.RunConfig{Params: field.DefaultParams(), Width: 300, Height: 300, Frames: 20}
		ens := field.NewEnsemble(cfg, 4, 100)
		ens.Setup = func(c *field.RunConfig) { c.Driver = circleDriver{clickEvery: 5} }

		results, err := ens.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(4))
		for i, r := range results {
			Expect(r.Seed).To(Equal(int64(100 + i)))
		}

		single := cfg
		single.Seed = 102
		single.Driver = circleDriver{clickEvery: 5}
		solo, err := field.Run(context.Background(), single)
		Expect(err).NotTo(HaveOccurred())
		Expect(results[2].Final).To(Equal(solo.Final))
	})

	It("fails when any run fails", func() {
		cfg := field.RunConfig{Params: field.DefaultParams(), Width: 300, Height: 300, Frames: 0}
		_, err := field.NewEnsemble(cfg, 3, 1).Run(context.Background())
		Expect(err).To(HaveOccurred())
	})

	It("rejects a non-positive run count", func() {
		cfg := field.RunConfig{Params: field.DefaultParams(), Width: 300, Height: 300, Frames: 10}
		for _, n := range []int{0, -1} {
			results, err := field.NewEnsemble(cfg, n, 1).Run(context.Background())
			Expect(err).To(MatchError(field.ErrParameterBounds))
			Expect(results).To(BeNil())
		}
	})
})
