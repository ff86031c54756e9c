// Package eval replays recorded samples through the recognizer and reports
// how often each letter is accepted.
package eval

import (
	"context"
	"math/rand/v2"
	"slices"

	"github.com/sourcegraph/conc/pool"

	"github.com/f3rmion/abc/internal/gesture"
	"github.com/f3rmion/abc/internal/samples"
)

// Options tune an evaluation run.
type Options struct {
	MinPoints int    // 0 uses gesture.DefaultMinPoints
	Trials    int    // recognitions per sample; the fallback is random
	Workers   int    // letters evaluated concurrently; 0 means unlimited
	Seed      uint64 // 0 draws from the global source
}

// LetterReport summarises one letter.
type LetterReport struct {
	Letter    rune
	Samples   int
	Trials    int
	Accepted  int
	TooShort  int
	Dedicated bool // recognized by a shape classifier rather than the fallback
}

// Rate is the share of trials that matched.
func (r LetterReport) Rate() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Accepted) / float64(r.Trials)
}

// Report is the result of a run, ordered by letter.
type Report struct {
	Letters []LetterReport
}

// Totals sums every letter.
func (r Report) Totals() LetterReport {
	var t LetterReport
	for _, l := range r.Letters {
		t.Samples += l.Samples
		t.Trials += l.Trials
		t.Accepted += l.Accepted
		t.TooShort += l.TooShort
	}
	return t
}

// Run evaluates the samples, one goroutine per letter.
func Run(ctx context.Context, list []samples.Sample, opts Options) (Report, error) {
	if opts.Trials < 1 {
		opts.Trials = 1
	}

	byLetter := make(map[rune][]gesture.Stroke)
	for _, s := range list {
		byLetter[s.Letter] = append(byLetter[s.Letter], s.Stroke)
	}

	p := pool.NewWithResults[LetterReport]().WithContext(ctx).WithCancelOnError()
	if opts.Workers > 0 {
		p = p.WithMaxGoroutines(opts.Workers)
	}
	for letter, strokes := range byLetter {
		p.Go(func(ctx context.Context) (LetterReport, error) {
			return evalLetter(ctx, letter, strokes, opts)
		})
	}
	letters, err := p.Wait()
	if err != nil {
		return Report{}, err
	}

	slices.SortFunc(letters, func(a, b LetterReport) int { return int(a.Letter - b.Letter) })
	return Report{Letters: letters}, nil
}

func evalLetter(ctx context.Context, letter rune, strokes []gesture.Stroke, opts Options) (LetterReport, error) {
	ropts := []gesture.Option{}
	if opts.MinPoints > 0 {
		ropts = append(ropts, gesture.WithMinPoints(opts.MinPoints))
	}
	if opts.Seed != 0 {
		ropts = append(ropts, gesture.WithRand(rand.New(rand.NewPCG(opts.Seed, uint64(letter)))))
	}
	rec := gesture.NewRecognizer(ropts...)

	_, dedicated := gesture.ClassifierFor(letter)
	rep := LetterReport{Letter: letter, Samples: len(strokes), Dedicated: dedicated}
	for _, s := range strokes {
		if err := ctx.Err(); err != nil {
			return LetterReport{}, err
		}
		rep.Trials += opts.Trials
		if rec.TooShort(s) {
			rep.TooShort += opts.Trials
			continue
		}
		for range opts.Trials {
			if rec.Recognize(s, letter).Matched() {
				rep.Accepted++
			}
		}
	}
	return rep, nil
}
