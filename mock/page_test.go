package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/pagemedia"
	"github.com/fwojciec/pagemedia/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageMediaStore_Save(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SaveFn", func(t *testing.T) {
		t.Parallel()

		var calledWith *pagemedia.PageMedia
		s := &mock.PageMediaStore{
			SaveFn: func(_ context.Context, page *pagemedia.PageMedia) error {
				calledWith = page
				return nil
			},
		}

		page := &pagemedia.PageMedia{
			Title:     "Banana",
			SourceURL: "https://en.wikipedia.org/api/rest_v1/page/html/Banana",
		}

		err := s.Save(context.Background(), page)

		require.NoError(t, err)
		assert.Equal(t, page, calledWith)
	})
}
