package stats

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

// BoxSummary is the five-number summary of one box with Tukey whiskers
type BoxSummary struct {
	Count      int       `json:"count"`
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	LowerFence float64   `json:"lower_whisker"`
	UpperFence float64   `json:"upper_whisker"`
	Outliers   []float64 `json:"outliers,omitempty"`
}

// whiskerIQR is the multiple of the interquartile range the whiskers reach
const whiskerIQR = 1.5

// Box computes quartiles with the median-of-halves method. Whiskers end at
// the most extreme data points inside 1.5 IQR of the box; anything beyond is
// an outlier.
func Box(values []float64) (BoxSummary, error) {
	data := stats.Float64Data(values)
	if data.Len() == 0 {
		return BoxSummary{}, stats.ErrEmptyInput
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	min, err := stats.Min(data)
	if err != nil {
		return BoxSummary{}, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return BoxSummary{}, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return BoxSummary{}, err
	}

	q1, q3 := median, median
	if len(sorted) > 1 {
		quartiles, err := stats.Quartile(data)
		if err != nil {
			return BoxSummary{}, err
		}
		q1, q3 = quartiles.Q1, quartiles.Q3
	}

	iqr := q3 - q1
	lowLimit := q1 - whiskerIQR*iqr
	highLimit := q3 + whiskerIQR*iqr

	summary := BoxSummary{
		Count:      len(sorted),
		Min:        min,
		Q1:         q1,
		Median:     median,
		Q3:         q3,
		Max:        max,
		LowerFence: math.Inf(1),
		UpperFence: math.Inf(-1),
	}
	for _, v := range sorted {
		if v < lowLimit || v > highLimit {
			summary.Outliers = append(summary.Outliers, v)
			continue
		}
		summary.LowerFence = math.Min(summary.LowerFence, v)
		summary.UpperFence = math.Max(summary.UpperFence, v)
	}
	return summary, nil
}
