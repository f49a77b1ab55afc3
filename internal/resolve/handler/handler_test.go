package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-recon/internal/config"
	"league-recon/internal/resolve/model"
)

func testConfig() config.Config {
	return config.Config{
		MaxUploadMB:      8,
		AutoThreshold:    0.98,
		ReviewThreshold:  0.90,
		WeakThreshold:    0.80,
		ClusterThreshold: 0.85,
	}
}

func addFile(t *testing.T, mw *multipart.Writer, field, name, content string) {
	t.Helper()
	fw, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
}

func TestResolveEndpoint(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	addFile(t, mw, "source", "sheet.csv", "Player,ID\nKarl Anthony Towns,1\nJabari Smith,2\n")
	addFile(t, mw, "target", "store.csv", "Name,PID\nKarl-Anthony Towns,10\nJabari Smith Jr.,11\nJabari Smith Sr.,12\n")
	require.NoError(t, mw.WriteField("source_name", "Player"))
	require.NoError(t, mw.WriteField("source_id", "ID"))
	require.NoError(t, mw.WriteField("target_name", "Name"))
	require.NoError(t, mw.WriteField("target_id", "PID"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/resolve", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	Resolve(testConfig(), zerolog.Nop(), nil)(rr, req)
	require.Equal(t, 200, rr.Code, rr.Body.String())

	var res model.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))

	require.Len(t, res.Confirmed, 1)
	assert.Equal(t, "10", res.Confirmed[0].Target.SourceID)
	require.Len(t, res.NeedsReview, 1) // the two Jabari Smiths are ambiguous
	assert.Empty(t, res.Unmatched)
}

func TestResolveEndpointMissingFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	addFile(t, mw, "source", "sheet.csv", "Player\nLuka Doncic\n")
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/resolve", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	Resolve(testConfig(), zerolog.Nop(), nil)(rr, req)
	assert.Equal(t, 400, rr.Code)
}

func TestDuplicatesEndpoint(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	addFile(t, mw, "file", "roster.csv", "Player,ID\nMike Conley,1\nMichael Conley,2\nLeBron James,3\n")
	require.NoError(t, mw.WriteField("name", "Player"))
	require.NoError(t, mw.WriteField("id", "ID"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/duplicates", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()

	Duplicates(testConfig(), zerolog.Nop())(rr, req)
	require.Equal(t, 200, rr.Code, rr.Body.String())

	var res struct {
		Clusters []model.DuplicateCluster `json:"clusters"`
		Records  int                      `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, 3, res.Records)
	require.Len(t, res.Clusters, 1)
	assert.Len(t, res.Clusters[0].Members, 2)
}
