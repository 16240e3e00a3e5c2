package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cfb-realignment/realign-cli/internal/geo"
)

func TestWriteGeoJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, testStats()))

	var doc struct {
		Type     string `json:"type"`
		Features []struct {
			ID       string `json:"id"`
			Geometry struct {
				Type        string          `json:"type"`
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, "FeatureCollection", doc.Type)
	// Territory, center and capital for SEC; nothing for the single-school row.
	require.Len(t, doc.Features, 3)

	territory := doc.Features[0]
	assert.Equal(t, "SEC/1992/territory", territory.ID)
	assert.Equal(t, "Polygon", territory.Geometry.Type)
	assert.Equal(t, KindTerritory, territory.Properties["kind"])
	assert.Equal(t, "Birmingham, AL", territory.Properties["capital"])

	center := doc.Features[1]
	assert.Equal(t, "Point", center.Geometry.Type)
	var coords []float64
	require.NoError(t, json.Unmarshal(center.Geometry.Coordinates, &coords))
	assert.Equal(t, []float64{-86, 33}, coords)

	capital := doc.Features[2]
	assert.Equal(t, KindCapital, capital.Properties["kind"])
	assert.Equal(t, "Birmingham", capital.Properties["city"])
}

func TestWriteGeoJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, nil))
	assert.Contains(t, buf.String(), `"FeatureCollection"`)
}

func TestHullGeoJSON_RoundTrip(t *testing.T) {
	hull := testStats()[0].Territory
	data, err := EncodeHullGeoJSON(hull)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Polygon"`)

	got, err := DecodeHullGeoJSON(data)
	require.NoError(t, err)
	assert.Equal(t, hull, got)
}

func TestHullGeoJSON_Empty(t *testing.T) {
	data, err := EncodeHullGeoJSON(geo.Hull{})
	require.NoError(t, err)
	assert.Nil(t, data)

	got, err := DecodeHullGeoJSON(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeHullGeoJSON_WrongType(t *testing.T) {
	_, err := DecodeHullGeoJSON([]byte(`{"type":"Point","coordinates":[1,2]}`))
	assert.Error(t, err)

	_, err = DecodeHullGeoJSON([]byte(`not json`))
	assert.Error(t, err)
}
