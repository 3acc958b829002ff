package badge

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/wilbur182/linecount/internal/classify"
	"github.com/wilbur182/linecount/internal/config"
	"github.com/wilbur182/linecount/internal/counter"
)

func TestAbbreviate(t *testing.T) {
	cases := map[int]string{
		0:             "0",
		7:             "7",
		999:           "999",
		1000:          "1K",
		1234:          "1.2K",
		9999:          "9.9K",
		12345:         "12K",
		999_999:       "999K",
		1_000_000:     "1M",
		1_500_000:     "1.5M",
		12_000_000:    "12M",
		999_999_999:   "999M",
		1_000_000_000: "1B",
		2_100_000_000: "2.1B",
		-3:            "0",
	}
	for n, want := range cases {
		assert.Equal(t, want, Abbreviate(n), "Abbreviate(%d)", n)
	}
}

func TestFormat(t *testing.T) {
	exact := counter.Exact(classify.Result{Code: 1000, Comment: 200, Blank: 34})
	assert.Equal(t, "1234", Format(exact, config.DisplayExact))
	assert.Equal(t, "1.2K", Format(exact, config.DisplayAbbreviated))
	assert.Equal(t, "1.2K", Format(exact, ""), "unknown formats abbreviate")

	est := counter.Estimated(250_000)
	assert.Equal(t, "~250K", Format(est, config.DisplayAbbreviated))
	assert.Equal(t, "~250000", Format(est, config.DisplayExact))
}

func TestSeverity(t *testing.T) {
	assert.Equal(t, Normal, Severity(499, 500, 1000))
	assert.Equal(t, Warning, Severity(500, 500, 1000))
	assert.Equal(t, Warning, Severity(999, 500, 1000))
	assert.Equal(t, Error, Severity(1000, 500, 1000))
	assert.Equal(t, Normal, Severity(5000, 0, 0), "zero thresholds disable grading")
	assert.Equal(t, "warning", Warning.String())
}

func TestTooltip(t *testing.T) {
	exact := counter.Exact(classify.Result{Code: 1, Comment: 3, Blank: 1})
	assert.Equal(t, "5 lines (code 1, comment 3, blank 1)", Tooltip(exact))
	assert.Equal(t, "~1200 lines (estimated)", Tooltip(counter.Estimated(1200)))
	assert.Equal(t, "1 line", Tooltip(counter.TotalOnly(1)))
}

func TestRender(t *testing.T) {
	opts := FromConfig(config.Default().LineCount)
	out := Render(counter.TotalOnly(1500), opts)
	assert.Equal(t, "1.5K", ansi.Strip(out))
}
