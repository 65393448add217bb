package service

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var seoul = time.FixedZone("KST", 9*60*60)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func testParams(now time.Time) RecordManagerParams {
	return RecordManagerParams{
		Validator: validator.New(),
		Logger:    zap.NewNop(),
		Clock:     fixedClock(now),
		Location:  seoul,
	}
}

type recordedMutation struct {
	resource  string
	operation string
}

type fakeMutations struct {
	calls []recordedMutation
}

func (f *fakeMutations) RecordMutation(resource, operation string) {
	f.calls = append(f.calls, recordedMutation{resource: resource, operation: operation})
}
