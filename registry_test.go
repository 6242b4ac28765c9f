package colors

import (
	"testing"

	"github.com/ganemedelabs/saturon/mat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryBootstrapsWithoutPanicking(t *testing.T) {
	r := NewDefaultRegistry()
	assert.NotEmpty(t, r.Get("color-functions"))
	assert.NotEmpty(t, r.Get("named-colors"))
	assert.NotEmpty(t, r.Get("color-bases"))
	assert.NotEmpty(t, r.Get("fit-methods"))
}

func TestNamedColorRGBSynonymsShareCanonicalName(t *testing.T) {
	r := NewDefaultRegistry()
	aqua, ok := r.NamedColorRGB("aqua")
	require.True(t, ok)
	cyan, ok := r.NamedColorRGB("cyan")
	require.True(t, ok)
	assert.Equal(t, aqua, cyan)

	canonical, ok := r.NameForRGB(aqua)
	require.True(t, ok)
	assert.True(t, canonical == "aqua" || canonical == "cyan")
}

func TestDuplicateModelRegistrationRejected(t *testing.T) {
	r := NewDefaultRegistry()
	err := r.RegisterColorFunction("rgb", &ColorModelConverter{
		Components: []ComponentDefinition{{Name: "x", Index: 0, Kind: KindRange, Min: 0, Max: 1}},
	})
	require.Error(t, err)
	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, KindRegistration, engErr.Kind)
}

func TestRegisterColorFunctionRejectsUnresolvedBridge(t *testing.T) {
	r := NewDefaultRegistry()
	err := r.RegisterColorFunction("ghostmodel", &ColorModelConverter{
		Components: []ComponentDefinition{{Name: "x", Index: 0, Kind: KindRange, Min: 0, Max: 1}},
		Bridge:     "nowhere",
	})
	require.Error(t, err)
}

func TestRegisterColorFunctionRejectsReservedComponentName(t *testing.T) {
	r := NewDefaultRegistry()
	err := r.RegisterColorFunction("badmodel", &ColorModelConverter{
		Components: []ComponentDefinition{{Name: "none", Index: 0, Kind: KindRange, Min: 0, Max: 1}},
		Bridge:     "rgb",
	})
	require.Error(t, err)
}

func TestRegisterColorFunctionRejectsSelfBridge(t *testing.T) {
	r := NewDefaultRegistry()
	err := r.RegisterColorFunction("selfloop", &ColorModelConverter{
		Components: []ComponentDefinition{{Name: "x", Index: 0, Kind: KindRange, Min: 0, Max: 1}},
		Bridge:     "selfloop",
	})
	require.Error(t, err)
}

func TestRegisterNamedColorRejectsRGBSynonymOutsideBootstrap(t *testing.T) {
	r := NewDefaultRegistry()
	red, ok := r.NamedColorRGB("red")
	require.True(t, ok)
	err := r.RegisterNamedColor("scarlet", red)
	require.Error(t, err)
	var engErr *EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, KindRegistration, engErr.Kind)
}

func TestConvertIdentityPath(t *testing.T) {
	r := NewDefaultRegistry()
	v := mat.Vec3{10, 20, 30}
	out, err := r.Convert("rgb", "rgb", v)
	require.NoError(t, err)
	assert.Equal(t, v, out)
}

func TestConvertMultiHopPath(t *testing.T) {
	r := NewDefaultRegistry()
	rgbVal := mat.Vec3{200, 100, 50}
	lab, err := r.Convert("rgb", "lab", rgbVal)
	require.NoError(t, err)
	back, err := r.Convert("lab", "rgb", lab)
	require.NoError(t, err)
	for i := range rgbVal {
		assert.InDelta(t, rgbVal[i], back[i], 1e-3)
	}
}

func TestUnregisterRemovesModelFromEveryTable(t *testing.T) {
	r := NewDefaultRegistry()
	require.NoError(t, r.RegisterColorFunction("scratchmodel", &ColorModelConverter{
		Components: []ComponentDefinition{{Name: "x", Index: 0, Kind: KindRange, Min: 0, Max: 1}},
		Bridge:     "rgb",
		ToBridge:   func(v mat.Vec3) mat.Vec3 { return v },
		FromBridge: func(v mat.Vec3) mat.Vec3 { return v },
	}))
	_, ok := r.Model("scratchmodel")
	require.True(t, ok)

	r.Unregister("scratchmodel")
	_, ok = r.Model("scratchmodel")
	assert.False(t, ok)
	_, ok = r.Type("scratchmodel")
	assert.False(t, ok)
	_, ok = r.Base("scratchmodel")
	assert.False(t, ok)
}

func TestRegisterBatchInstallsEachKind(t *testing.T) {
	r := NewDefaultRegistry()
	err := r.Register("named-colors", map[string]any{
		"batchone": [3]int{11, 22, 33},
		"batchtwo": [3]int{44, 55, 66},
	})
	require.NoError(t, err)

	rgb, ok := r.NamedColorRGB("batchone")
	require.True(t, ok)
	assert.Equal(t, [3]int{11, 22, 33}, rgb)

	rgb, ok = r.NamedColorRGB("batchtwo")
	require.True(t, ok)
	assert.Equal(t, [3]int{44, 55, 66}, rgb)
}

func TestRegisterBatchStopsOnFirstError(t *testing.T) {
	r := NewDefaultRegistry()
	err := r.Register("named-colors", map[string]any{
		"freshname": "not-an-rgb-triple",
	})
	require.Error(t, err)
}

func TestRegisterBatchRejectsUnknownKind(t *testing.T) {
	r := NewDefaultRegistry()
	err := r.Register("not-a-real-kind", map[string]any{"x": [3]int{1, 2, 3}})
	require.Error(t, err)
}

func TestGetListsAreSorted(t *testing.T) {
	r := NewDefaultRegistry()
	names := r.Get("named-colors")
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
}
