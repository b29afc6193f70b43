package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"paraphrase-be/pkg/persona"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	return out.String(), err
}

func TestBatchJSON(t *testing.T) {
	out, err := execute(t, "--count", "3", "--seed", "42", "--json")
	require.NoError(t, err)

	var got []persona.Persona
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got, 3)

	again, err := execute(t, "--count", "3", "--seed", "42", "--json")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestConstrained(t *testing.T) {
	out, err := execute(t, "--gender", "female", "--stage", "retired", "--json", "--seed", "1")
	require.NoError(t, err)

	var got []persona.Persona
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, persona.GenderFemale, got[0].Gender)
	assert.Equal(t, persona.StageRetired, got[0].LifeStage)
}

func TestCards(t *testing.T) {
	out, err := execute(t, "-n", "1", "--seed", "7")
	require.NoError(t, err)
	assert.Contains(t, out, " year old ")
}

func TestInvalidFlags(t *testing.T) {
	_, err := execute(t, "--count", "0")
	assert.Error(t, err)

	_, err = execute(t, "--personality", "grumpy")
	assert.Error(t, err)
}
