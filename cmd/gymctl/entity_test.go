package main

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davicafu/gymlab/internal/apiclient"
	"github.com/davicafu/gymlab/internal/console"
	lq "github.com/davicafu/gymlab/internal/listquery"
)

func TestParseDateRange(t *testing.T) {
	r, err := parseDateRange("2024-01-01..2024-01-31")
	require.NoError(t, err)
	require.NotNil(t, r.Min)
	assert.Equal(t, 31, r.Max.Day())

	r, err = parseDateRange("")
	require.NoError(t, err)
	assert.Nil(t, r.Min)

	_, err = parseDateRange("2024-01-01")
	assert.Error(t, err)
	_, err = parseDateRange("2024-13-01..2024-01-31")
	assert.Error(t, err)
}

func TestParseAmountRange(t *testing.T) {
	r, err := parseAmountRange("10..50.5")
	require.NoError(t, err)
	assert.Equal(t, 50.5, *r.Max)

	_, err = parseAmountRange("10..x")
	assert.Error(t, err)
}

func TestParseFlag(t *testing.T) {
	f, err := parseFlag("")
	require.NoError(t, err)
	assert.Nil(t, f.Value)

	f, err = parseFlag("false")
	require.NoError(t, err)
	assert.False(t, *f.Value)
}

func TestSetStatus(t *testing.T) {
	f := console.NewEntryFilters()
	require.NoError(t, setStatus(&f, lq.StatusAll))
	assert.Equal(t, lq.StatusAll, f.Status)

	assert.Error(t, setStatus(&f, "Borrados"))
}

func TestSetStatus_EntityWithoutSoftDelete(t *testing.T) {
	f := console.NewNotificationFilters()
	require.NoError(t, setStatus(&f, lq.StatusActive))
	assert.Error(t, setStatus(&f, lq.StatusInactive))

	list := &cobra.Command{Use: "list"}
	notificationEntity().listFlags(list)
	assert.Nil(t, list.Flags().Lookup("status"))

	list = &cobra.Command{Use: "list"}
	clientEntity().listFlags(list)
	assert.NotNil(t, list.Flags().Lookup("status"))
}

func TestController_RejectsSizeOutsideAllowed(t *testing.T) {
	e := clientEntity()
	for _, size := range []string{"0", "-5", "7"} {
		list := &cobra.Command{Use: "list"}
		e.listFlags(list)
		require.NoError(t, list.Flags().Set("size", size))
		_, err := e.controller(list)
		assert.Error(t, err, size)
	}

	list := &cobra.Command{Use: "list"}
	e.listFlags(list)
	require.NoError(t, list.Flags().Set("size", "20"))
	ctl, err := e.controller(list)
	require.NoError(t, err)
	assert.Equal(t, 20, ctl.Snapshot().Size)
	assert.Equal(t, 1, ctl.Snapshot().Page)
}

func TestDescribe(t *testing.T) {
	assert.Contains(t, describe(apiclient.ErrUnauthorized), "gymctl login")
	assert.Equal(t, "Request error: bad input", describe(&apiclient.StatusError{Status: 400, Message: "bad input", Kind: apiclient.KindClient}))
	assert.Equal(t, "Error: boom", describe(errors.New("boom")))
}
