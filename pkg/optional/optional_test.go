package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreeStates(t *testing.T) {
	var absent Value[string]
	assert.False(t, absent.Present)
	assert.Nil(t, absent.Ptr())

	null := Null[string]()
	assert.True(t, null.Present)
	assert.False(t, null.Valid)
	assert.Nil(t, null.Ptr())

	set := Of("hello")
	assert.True(t, set.Present)
	assert.True(t, set.Valid)
	if assert.NotNil(t, set.Ptr()) {
		assert.Equal(t, "hello", *set.Ptr())
	}
}

func TestPtrCopies(t *testing.T) {
	set := Of(41)
	p := set.Ptr()
	*p = 42
	assert.Equal(t, 41, set.Val)
}

func TestUnmarshalDistinguishesNullFromAbsent(t *testing.T) {
	type payload struct {
		Serial Value[string] `json:"serial"`
		Slug   Value[string] `json:"slug"`
	}

	var p payload
	err := json.Unmarshal([]byte(`{"serial": null, "slug": "tee"}`), &p)
	assert.NoError(t, err)

	// serial appeared with null: present, not valid.
	assert.True(t, p.Serial.Present)
	assert.False(t, p.Serial.Valid)

	// slug carried a value.
	assert.True(t, p.Slug.Present)
	assert.True(t, p.Slug.Valid)
	assert.Equal(t, "tee", p.Slug.Val)
}

func TestMarshal(t *testing.T) {
	raw, err := json.Marshal(Of(7))
	assert.NoError(t, err)
	assert.Equal(t, "7", string(raw))

	raw, err = json.Marshal(Null[int]())
	assert.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
