package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-skycat/internal/logging"
)

const hygSample = `id,hip,hd,hr,gl,bf,proper,ra,dec,dist,mag
0,,,,,,Sol,0.000000,0.000000,0.0000,-26.700
32263,32349,48915,2491,Gl 244A,9Alp CMa,Sirius,6.752481,-16.716116,2.6371,-1.440
91262,91262,172167,7001,Gl 721,3Alp Lyr,Vega,18.615649,38.783692,7.6787,0.030
119000,,,,,,,23.000000,10.000000,100.0,8.500
`

func TestLoadHYG(t *testing.T) {
	stars, err := LoadHYG(strings.NewReader(hygSample), logging.Discard())
	require.NoError(t, err)
	require.Len(t, stars, 3, "the Sun should be skipped")

	sirius := stars[0]
	assert.Equal(t, "HIP32349", sirius.ID)
	assert.Equal(t, []string{"Sirius", "HD48915", "HR2491", "Gl 244A", "9Alp CMa"}, sirius.Aliases)
	assert.InDelta(t, -1.44, sirius.Magnitude, 1e-9)
	assert.InDelta(t, 6.752481*15, sirius.RAdeg, 1e-9)
	assert.InDelta(t, -16.716116, sirius.DecDeg, 1e-9)
	assert.Equal(t, TypeStar, sirius.Type)
	assert.Nil(t, sirius.Size)
	assert.Nil(t, sirius.Angle)

	assert.Equal(t, "HIP91262", stars[1].ID, "file order preserved")

	anon := stars[2]
	assert.Equal(t, "HYG119000", anon.ID)
	assert.Empty(t, anon.Aliases)
}

func TestLoadHYG_Malformed(t *testing.T) {
	tests := map[string]string{
		"missing column": "id,hip,ra,dec\n1,1,0,0\n",
		"bad ra":         "id,hip,hd,hr,gl,bf,proper,ra,dec,mag\n1,1,,,,,,abc,0,1\n",
		"bad dec":        "id,hip,hd,hr,gl,bf,proper,ra,dec,mag\n1,1,,,,,,1,95,1\n",
		"empty":          "",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadHYG(strings.NewReader(input), logging.Discard())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestLoadHYG_Duplicate(t *testing.T) {
	input := "id,hip,hd,hr,gl,bf,proper,ra,dec,mag\n1,7,,,,,,1,0,1\n2,7,,,,,,2,0,1\n"
	_, err := LoadHYG(strings.NewReader(input), logging.Discard())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestLoadCSV_ByteOrderMark(t *testing.T) {
	stars, err := LoadHYG(strings.NewReader("\uFEFF"+hygSample), logging.Discard())
	require.NoError(t, err)
	require.Len(t, stars, 3, "id column found behind a BOM")
	assert.Equal(t, "HIP32349", stars[0].ID)
	assert.Equal(t, "HYG119000", stars[2].ID)

	objs, err := LoadNGC(strings.NewReader("\uFEFF"+ngcSample), logging.Discard())
	require.NoError(t, err)
	require.Len(t, objs, 4)
	assert.Equal(t, "NGC0224", objs[0].ID)
}

const ngcSample = `Name;Type;RA;Dec;Const;MajAx;MinAx;PosAng;B-Mag;V-Mag;M;Identifiers;Common names
NGC0224;G;00:42:44.35;+41:16:08.6;And;177.83;69.66;35;4.29;3.44;031;2MASX J00424433+4116074,UGC 00454;Andromeda Galaxy
NGC1976;Cl+N;05:35:16.48;-05:23:22.8;Ori;90.00;60.00;;;4.00;042;LBN 974;Great Orion Nebula,Orion Nebula
NGC6720;PN;18:53:35.08;+33:01:45.0;Lyr;3.83;;;9.70;;057;;Ring Nebula
NGC0001;G;00:07:15.84;+27:42:29.1;Peg;1.57;1.07;112;13.69;;;;
NGC0009;Dup;00:08:54.71;+23:49:01.0;Peg;;;;;;;;
IC0001;**;00:08:27.05;+27:43:03.6;Peg;;;;;;;;
`

func TestLoadNGC(t *testing.T) {
	objs, err := LoadNGC(strings.NewReader(ngcSample), logging.Discard())
	require.NoError(t, err)
	require.Len(t, objs, 4)

	m31 := objs[0]
	assert.Equal(t, "NGC0224", m31.ID)
	assert.Equal(t, TypeGalaxy, m31.Type)
	assert.InDelta(t, 3.44, m31.Magnitude, 1e-9, "V magnitude preferred")
	assert.Equal(t, []string{"M31", "2MASX J00424433+4116074", "UGC 00454", "Andromeda Galaxy"}, m31.Aliases)
	require.NotNil(t, m31.Size)
	assert.InDelta(t, 177.83, m31.Size.Major, 1e-9)
	assert.InDelta(t, 69.66, m31.Size.Minor, 1e-9)
	require.NotNil(t, m31.Angle)
	assert.InDelta(t, 35, *m31.Angle, 1e-9)
	assert.InDelta(t, (0+42.0/60+44.35/3600)*15, m31.RAdeg, 1e-9)
	assert.InDelta(t, 41+16.0/60+8.6/3600, m31.DecDeg, 1e-9)

	orion := objs[1]
	assert.Equal(t, TypeClusterNebula, orion.Type)
	assert.Nil(t, orion.Angle, "empty PosAng means no angle")
	assert.Less(t, orion.DecDeg, 0.0)

	ring := objs[2]
	assert.InDelta(t, 9.70, ring.Magnitude, 1e-9, "falls back to B magnitude")
	require.NotNil(t, ring.Size)
	assert.Equal(t, ring.Size.Major, ring.Size.Minor, "minor axis defaults to major")

	assert.Equal(t, "NGC0001", objs[3].ID)
	assert.Empty(t, objs[3].Aliases)
}

func TestLoadNGC_UnknownType(t *testing.T) {
	input := "Name;Type;RA;Dec;MajAx;MinAx;PosAng;B-Mag;V-Mag\nNGC9999;Blob;00:00:00;+00:00:00;;;;;5\n"
	_, err := LoadNGC(strings.NewReader(input), logging.Discard())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "Blob")
}

func TestLoadNGC_BadCoordinates(t *testing.T) {
	input := "Name;Type;RA;Dec;MajAx;MinAx;PosAng;B-Mag;V-Mag\nNGC9999;G;xx:00:00;+00:00:00;;;;;5\n"
	_, err := LoadNGC(strings.NewReader(input), logging.Discard())
	assert.ErrorIs(t, err, ErrMalformed)
}

const constellationSample = `# Sample figures
ORI Orion
    5.919,7.407 5.533,-0.299 5.242,-8.202
	5.679,-1.943 5.603,-1.202 5.533,-0.299

CRU Crux
    12.443,-63.099 12.795,-59.689
`

func TestLoadConstellations(t *testing.T) {
	cons, err := LoadConstellations(strings.NewReader(constellationSample), logging.Discard())
	require.NoError(t, err)
	require.Len(t, cons, 2)

	ori := cons[0]
	assert.Equal(t, "ORI", ori.Abbr)
	assert.Equal(t, "Orion", ori.Name)
	require.Len(t, ori.Lines, 2)
	require.Len(t, ori.Lines[0].Positions, 3)
	assert.InDelta(t, 5.919*15, ori.Lines[0].Positions[0].RAdeg, 1e-9)
	assert.InDelta(t, 7.407, ori.Lines[0].Positions[0].DecDeg, 1e-9)
	assert.Equal(t, 4, ori.Segments())

	assert.Equal(t, "CRU", cons[1].Abbr)
	assert.Equal(t, 1, cons[1].Segments())
}

func TestLoadConstellations_Malformed(t *testing.T) {
	tests := map[string]string{
		"line before header": "   1,2 3,4\n",
		"missing comma":      "ORI Orion\n   5.9 7.4\n",
		"bad dec":            "ORI Orion\n   5.9,97\n",
		"bad ra":             "ORI Orion\n   25,7\n",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConstellations(strings.NewReader(input), logging.Discard())
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}

	_, err := LoadConstellations(strings.NewReader("ORI Orion\nORI Again\n"), logging.Discard())
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestObjectType_Name(t *testing.T) {
	name, err := TypeOpenCluster.Name()
	require.NoError(t, err)
	assert.Equal(t, "Open Cluster", name)

	_, err = ObjectType(0).Name()
	assert.ErrorIs(t, err, ErrUnknownObjectType)

	assert.Equal(t, "ObjectType(99)", ObjectType(99).String())

	// Every declared type has a name
	for typ := TypeStar; typ <= TypeOther; typ++ {
		_, err := typ.Name()
		assert.NoError(t, err, "type %d", int(typ))
	}
}
