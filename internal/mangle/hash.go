package mangle

import (
	"crypto/sha256"
	"encoding/hex"

	"wesl/internal/source"
)

// HashMangler appends a short digest of the module path: fbm_1a2b3c4d.
// It cannot be reversed without a recorded table.
type HashMangler struct{}

// DigestLen is the number of hex characters kept from the path digest.
const DigestLen = 8

func (HashMangler) Mangle(path source.ModulePath, decl string) string {
	sum := sha256.Sum256([]byte(path.String()))
	return decl + "_" + hex.EncodeToString(sum[:])[:DigestLen]
}

func (HashMangler) Unmangle(string) (source.ModulePath, string, bool) {
	return source.ModulePath{}, "", false
}

func (HashMangler) MangleTypes(decl string, variant uint32, types []TypeExpr) string {
	return mangleTypes(decl, variant, types)
}

// NoMangler keeps declaration names as they are. Only sound for single-module builds.
type NoMangler struct{}

func (NoMangler) Mangle(_ source.ModulePath, decl string) string {
	return decl
}

func (NoMangler) Unmangle(string) (source.ModulePath, string, bool) {
	return source.ModulePath{}, "", false
}

func (NoMangler) MangleTypes(decl string, variant uint32, types []TypeExpr) string {
	return mangleTypes(decl, variant, types)
}

var (
	_ Mangler = EscapeMangler{}
	_ Mangler = HashMangler{}
	_ Mangler = NoMangler{}
)
