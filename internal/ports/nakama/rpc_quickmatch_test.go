package nakama

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/heroiclabs/nakama-common/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMatchFinder struct {
	matches   []*api.Match
	listErr   error
	created   []string
	lastQuery string
	lastMax   int
}

func (f *fakeMatchFinder) MatchList(ctx context.Context, limit int, authoritative bool, label string, minSize, maxSize *int, query string) ([]*api.Match, error) {
	f.lastQuery = query
	f.lastMax = *maxSize
	return f.matches, f.listErr
}

func (f *fakeMatchFinder) MatchCreate(ctx context.Context, module string, params map[string]interface{}) (string, error) {
	f.created = append(f.created, module)
	return "new-match.node-1", nil
}

func TestQuickMatch(t *testing.T) {
	tests := []struct {
		name    string
		matches []*api.Match
		want    QuickMatchResponse
		created []string
	}{
		{
			name:    "JoinsOpenMatch",
			matches: []*api.Match{{MatchId: "open-match.node-1"}},
			want:    QuickMatchResponse{MatchID: "open-match.node-1"},
		},
		{
			name:    "CreatesWhenNoneOpen",
			want:    QuickMatchResponse{MatchID: "new-match.node-1", IsNew: true},
			created: []string{MatchNameUno},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			finder := &fakeMatchFinder{matches: test.matches}

			payload, err := quickMatch(context.Background(), noopLogger{}, finder)
			require.NoError(t, err)

			var got QuickMatchResponse
			require.NoError(t, json.Unmarshal([]byte(payload), &got))
			assert.Equal(t, test.want, got)
			assert.Equal(t, test.created, finder.created)
			assert.Equal(t, "+label.open:T +label.game:uno", finder.lastQuery)
			assert.Equal(t, 1, finder.lastMax)
		})
	}
}

func TestQuickMatchListError(t *testing.T) {
	finder := &fakeMatchFinder{listErr: errors.New("unavailable")}
	_, err := quickMatch(context.Background(), noopLogger{}, finder)
	assert.ErrorIs(t, err, finder.listErr)
	assert.Empty(t, finder.created)
}
