package mux

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"cardroom-server/pkg/table"
)

var cbg = context.Background()

func Test_playerRouter(t *testing.T) {
	m := NewMux("")

	m.playerRouter.Path("/test").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, "OK")
	})

	ts := httptest.NewServer(m)
	defer ts.Close()

	var errObj errorResponse
	assertGet(t, ts, "/test", &errObj, 401)
	assert.Equal(t, "Unauthorized", errObj.Message)

	player, err := table.CreatePlayer(cbg, "player router test", 10000)
	assert.NoError(t, err)

	// test using the header
	var str string
	assertGet(t, ts, "/test", &str, 200, player.ID)
	assert.Equal(t, "OK", str)

	// an unknown player is still unauthorized
	assertGet(t, ts, "/test", &errObj, 401, player.ID+100000)
}
