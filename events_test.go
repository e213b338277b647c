package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventName(t *testing.T) {
	assert.Equal(t, "Tecrübe Etkinliği",
		eventName(map[string]interface{}{"name": []byte("Tecrübe Etkinliği")}))
	assert.Equal(t, "Etkinlik", eventName(map[string]interface{}{"name": []byte("")}))
	assert.Equal(t, "Etkinlik", eventName(map[string]interface{}{}))
}
