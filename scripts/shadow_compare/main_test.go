package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnwrapEnvelope(t *testing.T) {
	assert.JSONEq(t, `[1,2]`, string(unwrapEnvelope([]byte(`{"data":[1,2],"meta":{"count":2}}`))))
	assert.Equal(t, `[1,2]`, string(unwrapEnvelope([]byte(`[1,2]`))))
}

func TestPayloadsEqual(t *testing.T) {
	assert.True(t, payloadsEqual([]byte(`{"gpa":3,"totalCredits":3}`), []byte(`{"totalCredits":3, "gpa":3.0}`)))
	assert.False(t, payloadsEqual([]byte(`{"gpa":3.57}`), []byte(`{"gpa":3.5}`)))
}

func TestCompareTarget(t *testing.T) {
	goSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"data":{"gpa":3.57,"totalCredits":7,"coursesCount":2}}`)
	}))
	defer goSrv.Close()
	legacySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"gpa":3.57,"totalCredits":7,"coursesCount":2}`)
	}))
	defer legacySrv.Close()

	comp := compareTarget(goSrv.Client(), goSrv.URL, legacySrv.URL, "tok", target{Path: "/enrollments/me/gpa", Critical: true})
	require.NoError(t, comp.Err)
	assert.True(t, comp.StatusMatch)
	assert.True(t, comp.BodyMatch)
	assert.False(t, comp.breaking())
}
