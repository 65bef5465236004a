package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_JSON(t *testing.T) {
	var branch Branch
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"Cardiology","Services":[],"Branch_techs":[],"media":[]}`), &branch))
	assert.Equal(t, ID("1"), branch.ID)
	assert.Empty(t, branch.Techs)

	var doctor Doctor
	require.NoError(t, json.Unmarshal([]byte(`{"id":"6f1c-uuid","branch_id":null}`), &doctor))
	assert.Equal(t, ID("6f1c-uuid"), doctor.ID)
	assert.True(t, doctor.BranchID.IsZero())

	out, err := json.Marshal(map[string]ID{"num": "7", "uuid": "a-b", "neg": "-3"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"num":7,"uuid":"a-b","neg":-3}`, string(out))
}

func TestID_MarshalNonCanonicalNumberAsString(t *testing.T) {
	out, err := json.Marshal([]map[string]ID{{"id": "007"}, {"id": "+7"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"007"},{"id":"+7"}]`, string(out))
}

func TestDoctor_FullName(t *testing.T) {
	d := Doctor{FirstName: "Азиз", SecondName: "Каримов", ThirdName: " "}
	assert.Equal(t, "Каримов Азиз", d.FullName())
}
