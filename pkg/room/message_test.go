package room

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdditionalData(t *testing.T) {
	a := assert.New(t)

	var payload PayloadIn
	a.NoError(json.Unmarshal([]byte(`{"action":"raise","additionalData":{"amount":200,"name":"x","force":true},"context":"abc"}`), &payload))

	a.Equal("raise", payload.Action)
	a.Equal("abc", payload.Context)

	amount, ok := payload.AdditionalData.GetInt("amount")
	a.True(ok)
	a.Equal(200, amount)

	name, ok := payload.AdditionalData.GetString("name")
	a.True(ok)
	a.Equal("x", name)

	force, ok := payload.AdditionalData.GetBool("force")
	a.True(ok)
	a.True(force)

	_, ok = payload.AdditionalData.GetInt("name")
	a.False(ok)

	_, ok = payload.AdditionalData.GetString("missing")
	a.False(ok)
}

func TestOK(t *testing.T) {
	a := assert.New(t)

	res := OK()
	a.Equal("status", res.Key)
	a.Equal("OK", res.Value)
	a.Equal("", res.Context)

	res = OK("ctx-1")
	a.Equal("ctx-1", res.Context)
}
