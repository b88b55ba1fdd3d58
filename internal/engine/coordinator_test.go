package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/piwi3910/RebarCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordinator_RunReturnsComparison(t *testing.T) {
	c := NewCoordinator(New(DefaultSettings()), nil)

	cmp, err := c.Run(context.Background(), model.OptimizeRequest{
		Items:         exactFitItems(),
		StockLengthMm: 12000,
	})
	require.NoError(t, err)
	assert.Len(t, cmp.Summaries, 2)
	assert.Equal(t, uint64(1), c.Latest())
}

func TestCoordinator_NewestRequestWins(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	fn := func(ctx context.Context, req model.OptimizeRequest) (model.Comparison, error) {
		if req.StockLengthMm == 6000 {
			close(started)
			<-release
		}
		return model.Comparison{Oversize: model.OversizeReport{{ID: fmt.Sprintf("from-%d", req.StockLengthMm)}}}, nil
	}
	c := newCoordinator(fn, nil)

	type outcome struct {
		cmp model.Comparison
		err error
	}
	first := make(chan outcome, 1)
	go func() {
		cmp, err := c.Run(context.Background(), model.OptimizeRequest{StockLengthMm: 6000})
		first <- outcome{cmp, err}
	}()

	<-started
	cmp, err := c.Run(context.Background(), model.OptimizeRequest{StockLengthMm: 12000})
	require.NoError(t, err)
	require.Len(t, cmp.Oversize, 1)
	assert.Equal(t, "from-12000", cmp.Oversize[0].ID)

	close(release)
	select {
	case got := <-first:
		assert.ErrorIs(t, got.err, ErrSuperseded)
		assert.Empty(t, got.cmp.Summaries)
	case <-time.After(5 * time.Second):
		t.Fatal("stale run did not finish")
	}
	assert.Equal(t, uint64(2), c.Latest())
}

func TestCoordinator_CancelsStaleRun(t *testing.T) {
	started := make(chan struct{})
	cancelled := make(chan struct{})

	fn := func(ctx context.Context, req model.OptimizeRequest) (model.Comparison, error) {
		if req.StockLengthMm == 6000 {
			close(started)
			<-ctx.Done()
			close(cancelled)
			return model.Comparison{}, ctx.Err()
		}
		return model.Comparison{}, nil
	}
	c := newCoordinator(fn, nil)

	errs := make(chan error, 1)
	go func() {
		_, err := c.Run(context.Background(), model.OptimizeRequest{StockLengthMm: 6000})
		errs <- err
	}()

	<-started
	_, err := c.Run(context.Background(), model.OptimizeRequest{StockLengthMm: 12000})
	require.NoError(t, err)

	select {
	case <-cancelled:
	case <-time.After(5 * time.Second):
		t.Fatal("stale run was not cancelled")
	}
	assert.ErrorIs(t, <-errs, ErrSuperseded)
}

func TestCoordinator_ErrorOfLatestRunIsReturned(t *testing.T) {
	boom := errors.New("boom")
	c := newCoordinator(func(ctx context.Context, req model.OptimizeRequest) (model.Comparison, error) {
		return model.Comparison{}, boom
	}, nil)

	_, err := c.Run(context.Background(), model.OptimizeRequest{})
	assert.ErrorIs(t, err, boom)
}
