package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestFromDB(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"invalid text representation", &pq.Error{Code: "22P02"}, KindBadRequest},
		{"numeric out of range", &pq.Error{Code: "22003"}, KindBadRequest},
		{"not null violation", &pq.Error{Code: "23502"}, KindBadRequest},
		{"unique violation", &pq.Error{Code: "23505"}, KindBadRequest},
		{"foreign key violation", &pq.Error{Code: "23503"}, KindNotFound},
		{"wrapped foreign key violation", fmt.Errorf("insert: %w", &pq.Error{Code: "23503"}), KindNotFound},
		{"connection failure", &pq.Error{Code: "08006"}, KindInternal},
		{"plain error", errors.New("boom"), KindInternal},
		{"already classified", NotFound("topic"), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(FromDB(tt.err)))
		})
	}

	assert.NoError(t, FromDB(nil))
}

func TestErrorMessages(t *testing.T) {
	err := BadRequest("sort_by not allowed")
	assert.Equal(t, MsgBadRequest, err.Msg)
	assert.Contains(t, err.Error(), "sort_by not allowed")
	assert.True(t, IsBadRequest(err))
	assert.False(t, IsNotFound(err))

	nf := NotFound("article 99")
	assert.Equal(t, MsgNotFound, nf.Msg)
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", nf)))

	cause := errors.New("conn reset")
	internal := Internal(cause)
	assert.Equal(t, MsgInternal, internal.Msg)
	assert.ErrorIs(t, internal, cause)
}
