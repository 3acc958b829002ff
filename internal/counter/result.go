package counter

import (
	"encoding/json"

	"github.com/wilbur182/linecount/internal/classify"
)

// Result is the line count of one file. Code, Comment and Blank are only
// meaningful when Classified is true, which never happens together with
// Estimated.
type Result struct {
	Total      int
	Estimated  bool
	Classified bool
	Code       int
	Comment    int
	Blank      int
}

// Exact builds a classified result from a full scan.
func Exact(r classify.Result) Result {
	return Result{
		Total:      r.Total(),
		Classified: true,
		Code:       r.Code,
		Comment:    r.Comment,
		Blank:      r.Blank,
	}
}

// TotalOnly builds an exact result without a breakdown, used when the
// file's syntax is unknown.
func TotalOnly(total int) Result {
	return Result{Total: total}
}

// Estimated builds an approximate result.
func Estimated(total int) Result {
	return Result{Total: total, Estimated: true}
}

// Breakdown returns the code/comment/blank split if classification ran.
func (r Result) Breakdown() (classify.Result, bool) {
	if !r.Classified {
		return classify.Result{}, false
	}
	return classify.Result{Code: r.Code, Comment: r.Comment, Blank: r.Blank}, true
}

type resultJSON struct {
	Total     int  `json:"total"`
	Estimated bool `json:"estimated"`
	Code      *int `json:"code,omitempty"`
	Comment   *int `json:"comment,omitempty"`
	Blank     *int `json:"blank,omitempty"`
}

// MarshalJSON omits the breakdown fields when classification did not run.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{Total: r.Total, Estimated: r.Estimated}
	if r.Classified {
		out.Code, out.Comment, out.Blank = &r.Code, &r.Comment, &r.Blank
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var in resultJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Result{Total: in.Total, Estimated: in.Estimated}
	if in.Code != nil || in.Comment != nil || in.Blank != nil {
		r.Classified = true
		r.Code, r.Comment, r.Blank = deref(in.Code), deref(in.Comment), deref(in.Blank)
	}
	return nil
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
