package httpdto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponseKeepsEmptyData(t *testing.T) {
	body, err := json.Marshal(NewSuccessResponse([]MessageSummary{}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"data":[]}`, string(body))
}

func TestErrorResponseShape(t *testing.T) {
	body, err := json.Marshal(NewErrorResponse("not found", "NOT_FOUND"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"data":null,"error":"not found","code":"NOT_FOUND"}`, string(body))
}
