package errortypes

import (
	"errors"
	"testing"
)

func TestContainsFatalError(t *testing.T) {
	tests := []struct {
		name string
		errs []error
		want bool
	}{
		{
			name: "empty",
			errs: nil,
			want: false,
		},
		{
			name: "only-warnings",
			errs: []error{&Warning{Message: "ignored field"}},
			want: false,
		},
		{
			name: "coded-fatal",
			errs: []error{&Warning{Message: "ignored field"}, &BadInput{Message: "missing id"}},
			want: true,
		},
		{
			name: "uncoded-error-is-fatal",
			errs: []error{errors.New("plain error")},
			want: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsFatalError(tt.errs); got != tt.want {
				t.Errorf("ContainsFatalError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "timeout",
			err:  &Timeout{Message: "deadline exceeded"},
			want: TimeoutErrorCode,
		},
		{
			name: "source-unavailable",
			err:  &SourceUnavailable{Message: "inventory read failed"},
			want: SourceUnavailableErrorCode,
		},
		{
			name: "uncoded",
			err:  errors.New("plain error"),
			want: UnknownErrorCode,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadCode(tt.err); got != tt.want {
				t.Errorf("ReadCode() = %v, want %v", got, tt.want)
			}
		})
	}
}
