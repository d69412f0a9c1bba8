package exitcode

import "testing"

func TestMergeEmptyIsSuccess(t *testing.T) {
	if got := Merge(nil); got != Success {
		t.Errorf("Merge(nil) = %v, want Success", got)
	}
}

func TestMergeAnyErrorWins(t *testing.T) {
	cases := [][]ExitCode{
		{GeneralError},
		{KilledBySigint},
		{KilledBySigint, Success},
		{Success, GeneralError},
		{GeneralError, KilledBySigint},
	}
	for _, c := range cases {
		if got := Merge(c); got != GeneralError {
			t.Errorf("Merge(%v) = %v, want GeneralError", c, got)
		}
	}
}

func TestMergeAllSuccessIsSuccess(t *testing.T) {
	cases := [][]ExitCode{
		{Success},
		{Success, Success},
	}
	for _, c := range cases {
		if got := Merge(c); got != Success {
			t.Errorf("Merge(%v) = %v, want Success", c, got)
		}
	}
}

func TestIntMapping(t *testing.T) {
	cases := map[ExitCode]int{
		Success:         0,
		HasResultsTrue:  0,
		HasResultsFalse: 1,
		GeneralError:    1,
		KilledBySigint:  130,
	}
	for code, want := range cases {
		if got := code.Int(); got != want {
			t.Errorf("%v.Int() = %d, want %d", code, got, want)
		}
	}
}

func TestIsError(t *testing.T) {
	if Success.IsError() {
		t.Error("Success should not be an error")
	}
	if HasResultsTrue.IsError() {
		t.Error("HasResultsTrue should not be an error")
	}
	if !HasResultsFalse.IsError() {
		t.Error("HasResultsFalse should be an error")
	}
	if !GeneralError.IsError() {
		t.Error("GeneralError should be an error")
	}
	if !KilledBySigint.IsError() {
		t.Error("KilledBySigint should be an error")
	}
}
