package contracts

import (
	"encoding/json"
	"testing"
	"testing/fstest"

	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	_fs := fstest.MapFS{}

	stNEF, bNEF := anyValidNEF(t)
	stManifest, bManifest := anyValidManifest(t, "Vault Share")
	_fs[shareTokenDir+"/"+nefName] = &fstest.MapFile{Data: bNEF}
	_fs[shareTokenDir+"/"+manifestName] = &fstest.MapFile{Data: bManifest}

	_, bVaultNEF := anyValidNEF(t)
	_, bVaultManifest := anyValidManifest(t, "Vault")
	_fs[vaultDir+"/"+nefName] = &fstest.MapFile{Data: bVaultNEF}
	_fs[vaultDir+"/"+manifestName] = &fstest.MapFile{Data: bVaultManifest}

	cs, err := Read(_fs)
	require.NoError(t, err)
	require.Len(t, cs, 2)

	// Deployment order, share token first.
	require.Equal(t, stNEF, cs[0].NEF)
	require.Equal(t, stManifest, cs[0].Manifest)
	require.Equal(t, "Vault", cs[1].Manifest.Name)
}

func TestReadMissingFiles(t *testing.T) {
	_fs := fstest.MapFS{}

	// Missing NEF.
	_, err := Read(_fs)
	require.Error(t, err)

	// Missing manifest.
	_fs[shareTokenDir+"/"+nefName] = &fstest.MapFile{}
	_, err = Read(_fs)
	require.Error(t, err)
}

func TestReadInvalidFormat(t *testing.T) {
	var (
		_fs          = fstest.MapFS{}
		nefPath      = shareTokenDir + "/" + nefName
		manifestPath = shareTokenDir + "/" + manifestName
	)

	_, validNEF := anyValidNEF(t)
	_, validManifest := anyValidManifest(t, "zero")

	_fs[nefPath] = &fstest.MapFile{Data: validNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: validManifest}

	_, err := read(_fs, []string{shareTokenDir})
	require.NoError(t, err)

	_fs[nefPath] = &fstest.MapFile{Data: []byte("not a NEF")}
	_fs[manifestPath] = &fstest.MapFile{Data: validManifest}

	_, err = read(_fs, []string{shareTokenDir})
	require.ErrorIs(t, err, errInvalidNEF)

	_fs[nefPath] = &fstest.MapFile{Data: validNEF}
	_fs[manifestPath] = &fstest.MapFile{Data: []byte("not a manifest")}

	_, err = read(_fs, []string{shareTokenDir})
	require.ErrorIs(t, err, errInvalidManifest)
}

func anyValidNEF(tb testing.TB) (nef.File, []byte) {
	script := make([]byte, 32)

	_nef, err := nef.NewFile(script)
	require.NoError(tb, err)

	bNEF, err := _nef.Bytes()
	require.NoError(tb, err)

	return *_nef, bNEF
}

func anyValidManifest(tb testing.TB, name string) (manifest.Manifest, []byte) {
	_manifest := manifest.NewManifest(name)

	jManifest, err := json.Marshal(_manifest)
	require.NoError(tb, err)

	return *_manifest, jManifest
}
