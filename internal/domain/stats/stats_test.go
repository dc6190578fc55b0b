package stats_test

import (
	"testing"

	"github.com/dalemusser/stephub/internal/domain/models"
	"github.com/dalemusser/stephub/internal/domain/stats"
	"pgregory.net/rapid"
)

func makeSteps(total, completed int) []models.Step {
	steps := make([]models.Step, total)
	for i := range steps {
		steps[i].Title = "Step"
		steps[i].Completed = i < completed
	}
	return steps
}

func TestCompute_Empty(t *testing.T) {
	got := stats.Compute(nil)
	want := stats.Summary{Total: 0, Completed: 0, Pending: 0, Percentage: 0}
	if got != want {
		t.Errorf("Compute(nil): got %+v, want %+v", got, want)
	}

	got = stats.Compute([]models.Step{})
	if got != want {
		t.Errorf("Compute(empty): got %+v, want %+v", got, want)
	}
}

func TestCompute_OneOfFour(t *testing.T) {
	got := stats.Compute(makeSteps(4, 1))
	want := stats.Summary{Total: 4, Completed: 1, Pending: 3, Percentage: 25}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCompute_RoundsHalfUp(t *testing.T) {
	// 2/3 is 66.67; round-half-up gives 67.
	got := stats.Compute(makeSteps(3, 2))
	want := stats.Summary{Total: 3, Completed: 2, Pending: 1, Percentage: 67}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	// 1/8 is 12.5; half rounds up to 13.
	got = stats.Compute(makeSteps(8, 1))
	if got.Percentage != 13 {
		t.Errorf("percentage for 1/8: got %d, want 13", got.Percentage)
	}
}

func TestCompute_AllCompleted(t *testing.T) {
	got := stats.Compute(makeSteps(5, 5))
	want := stats.Summary{Total: 5, Completed: 5, Pending: 0, Percentage: 100}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCompute_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		total := rapid.IntRange(0, 200).Draw(rt, "total")
		completed := 0
		steps := make([]models.Step, total)
		for i := range steps {
			steps[i].Completed = rapid.Bool().Draw(rt, "completed")
			if steps[i].Completed {
				completed++
			}
		}

		got := stats.Compute(steps)

		if got.Total != total {
			rt.Fatalf("total: got %d, want %d", got.Total, total)
		}
		if got.Completed != completed {
			rt.Fatalf("completed: got %d, want %d", got.Completed, completed)
		}
		if got.Pending != got.Total-got.Completed {
			rt.Fatalf("pending %d != total %d - completed %d", got.Pending, got.Total, got.Completed)
		}
		if got.Pending < 0 || got.Completed < 0 {
			rt.Fatalf("negative counts: %+v", got)
		}
		if got.Percentage < 0 || got.Percentage > 100 {
			rt.Fatalf("percentage out of range: %d", got.Percentage)
		}
		if total == 0 && got.Percentage != 0 {
			rt.Fatalf("empty input must give 0 percentage, got %d", got.Percentage)
		}
		if total > 0 {
			want := (100*completed + total/2) / total
			if got.Percentage != want {
				rt.Fatalf("percentage: got %d, want %d", got.Percentage, want)
			}
		}
	})
}

func TestCompute_CompletingNeverDecreases(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		total := rapid.IntRange(1, 50).Draw(rt, "total")
		completed := rapid.IntRange(0, total).Draw(rt, "completed")
		steps := makeSteps(total, completed)

		before := stats.Compute(steps)

		// Marking an already-completed step complete again changes nothing.
		if completed > 0 {
			steps[0].Completed = true
			again := stats.Compute(steps)
			if again != before {
				rt.Fatalf("re-completing changed stats: %+v vs %+v", again, before)
			}
		}

		// Completing a pending step never decreases the completed count.
		if completed < total {
			steps[total-1].Completed = true
			after := stats.Compute(steps)
			if after.Completed < before.Completed || after.Total != before.Total {
				rt.Fatalf("completing decreased counts: %+v vs %+v", after, before)
			}
		}
	})
}
