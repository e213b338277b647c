package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValueString(t *testing.T) {
	assert.Equal(t, "", valueString(nil))
	assert.Equal(t, "abc", valueString("abc"))
	assert.Equal(t, "abc", valueString([]byte("abc")))
	assert.Equal(t, "42", valueString(int64(42)))
	assert.Equal(t, "1.5", valueString(1.5))
	assert.Equal(t, "2026-03-10 14:00:00",
		valueString(time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)))
}

func TestValueInt(t *testing.T) {
	assert.Equal(t, int64(0), valueInt(nil))
	assert.Equal(t, int64(42), valueInt(int64(42)))
	assert.Equal(t, int64(42), valueInt(42))
	assert.Equal(t, int64(42), valueInt(42.9))
	assert.Equal(t, int64(42), valueInt([]byte("42")))
	assert.Equal(t, int64(42), valueInt("42"))
	assert.Equal(t, int64(0), valueInt("not a number"))
}

func TestValueFloat(t *testing.T) {
	assert.Equal(t, float64(0), valueFloat(nil))
	assert.Equal(t, 1.5, valueFloat(1.5))
	assert.Equal(t, float64(42), valueFloat(int64(42)))
	assert.Equal(t, 1.5, valueFloat([]byte("1.5")))
	assert.Equal(t, 1.5, valueFloat("1.5"))
}

func TestFirstValue(t *testing.T) {
	row := map[string]interface{}{
		"cheque": nil,
		"won":    int64(3),
	}
	// nil values do not count as present.
	assert.Equal(t, int64(3), firstValue(row, "cheque", "won"))
	assert.Nil(t, firstValue(row, "missing", "also_missing"))
	assert.Nil(t, firstValue(map[string]interface{}{}, "cheque"))
}
