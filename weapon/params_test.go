package weapon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseType(t *testing.T) {
	cases := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"pistol", TypePistol, false},
		{" Rifle ", TypeRifle, false},
		{"SHOTGUN", TypeShotgun, false},
		{"bow", 0, true},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseType(c.in)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestTypeUnmarshalYAML(t *testing.T) {
	var doc struct {
		Type Type `yaml:"type"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("type: shotgun\n"), &doc))
	assert.Equal(t, TypeShotgun, doc.Type)

	assert.Error(t, yaml.Unmarshal([]byte("type: [a, b]\n"), &doc))
	assert.Error(t, yaml.Unmarshal([]byte("type: crossbow\n"), &doc))
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "rifle", TypeRifle.String())
	assert.Equal(t, "type(9)", Type(9).String())
}

func TestInputLatch(t *testing.T) {
	var l InputLatch

	assert.True(t, l.Set(true))
	assert.False(t, l.Set(true))
	assert.True(t, l.Pressed())

	// press then release inside one tick collapses to the release
	l.Set(true)
	l.Set(false)
	assert.False(t, l.Pressed())

	l.Set(true)
	l.Reset()
	assert.False(t, l.Pressed())
}

func TestAimSamplerMissingCollaborators(t *testing.T) {
	cases := []struct {
		name    string
		sampler *AimSampler
	}{
		{"nil_sampler", nil},
		{"no_aim", NewAimSampler(nil, scaleProjector{1, 1})},
		{"no_projector", NewAimSampler(&fakeAim{}, nil)},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ok := c.sampler.Sample()
			assert.False(t, ok)
		})
	}
}
