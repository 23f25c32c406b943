package matching

import (
	"math"
	"sort"

	"github.com/Knnivedh/job-rec/internal/domain/job"
)

// Cosine returns the cosine similarity of a and b, or 0 when the lengths
// differ or either vector is empty or has zero magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// TopCandidates caps jobs at limit. When resumeEmb is set, jobs carrying an
// embedding are ranked by similarity first; the rest keep their order.
func TopCandidates(resumeEmb []float32, jobs []job.Posting, limit int) []job.Posting {
	if limit <= 0 || len(resumeEmb) == 0 {
		return jobs
	}

	type scored struct {
		job job.Posting
		sim float64
	}
	withEmb := make([]scored, 0, len(jobs))
	without := make([]job.Posting, 0)
	for _, j := range jobs {
		if len(j.Embedding) == 0 {
			without = append(without, j)
			continue
		}
		withEmb = append(withEmb, scored{job: j, sim: Cosine(resumeEmb, j.Embedding)})
	}
	sort.SliceStable(withEmb, func(i, k int) bool { return withEmb[i].sim > withEmb[k].sim })

	out := make([]job.Posting, 0, min(limit, len(jobs)))
	for _, s := range withEmb {
		if len(out) == limit {
			return out
		}
		out = append(out, s.job)
	}
	for _, j := range without {
		if len(out) == limit {
			break
		}
		out = append(out, j)
	}
	return out
}
