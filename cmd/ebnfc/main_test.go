package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags() {
	treeFlag = false
	asmFlag = false
	verboseFlag = false
	configFlag = ""
}

func TestTreeDumpsBeforeCanonicalization(t *testing.T) {
	resetFlags()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader("a := 'x' | 'x' ."))
	cmd.SetArgs([]string{"--tree", "grammar"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, 2, bytes.Count(out.Bytes(), []byte(`T_STR_LITERAL "x"`)))
}

func TestEmitCWritesHeaderAndImpl(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	stem := filepath.Join(dir, "grammar")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader("a := 'x' ."))
	cmd.SetArgs([]string{stem})
	require.NoError(t, cmd.Execute())

	hdr, err := os.ReadFile(stem + ".h")
	require.NoError(t, err)
	assert.Contains(t, string(hdr), "#ifndef GRAMMAR_H")

	impl, err := os.ReadFile(stem + ".c")
	require.NoError(t, err)
	assert.Contains(t, string(impl), `#include "grammar.h"`)
}

func TestEmitAsmWritesIncAndSrc(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	stem := filepath.Join(dir, "grammar")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader("a := 'x' ."))
	cmd.SetArgs([]string{"--asm", stem})
	require.NoError(t, cmd.Execute())

	_, err := os.ReadFile(stem + ".inc")
	require.NoError(t, err)
	_, err = os.ReadFile(stem + ".nasm")
	require.NoError(t, err)
}

func TestUndeclaredProductionIsRunError(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	stem := filepath.Join(dir, "grammar")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader("a := missing ."))
	cmd.SetArgs([]string{stem})
	err := cmd.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestVerboseLogsPhases(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	stem := filepath.Join(dir, "grammar")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader("a := 'x' ."))
	cmd.SetArgs([]string{"--verbose", stem})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, errOut.String(), "phase: parse")
	assert.Contains(t, errOut.String(), "phase: layout")
	assert.Contains(t, errOut.String(), "file stem is 'grammar'")
}

func TestTreeStillLogsFileStemWhenVerbose(t *testing.T) {
	resetFlags()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader("a := 'x' ."))
	cmd.SetArgs([]string{"--verbose", "--tree", "grammar"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, errOut.String(), "file stem is 'grammar'")
}

func TestConfigFileSuppliesAsmDefault(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	stem := filepath.Join(dir, "grammar")
	cfgPath := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("asm: true\n"), 0o644))

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader("a := 'x' ."))
	cmd.SetArgs([]string{"--config", cfgPath, stem})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(stem + ".inc")
	assert.NoError(t, err)
}

func TestUsageErrorReportedToStderr(t *testing.T) {
	resetFlags()
	var out, errOut, reported bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs([]string{})

	code := execute(cmd, &reported)

	assert.Equal(t, 1, code)
	assert.Contains(t, reported.String(), "arg")
}

func TestUndeclaredProductionReportedToStderr(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	stem := filepath.Join(dir, "grammar")

	var out, errOut, reported bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader("a := missing ."))
	cmd.SetArgs([]string{stem})

	code := execute(cmd, &reported)

	assert.Equal(t, 1, code)
	assert.Contains(t, reported.String(), "not found")
}

func TestParseErrorEchoesRecentSource(t *testing.T) {
	resetFlags()
	dir := t.TempDir()
	stem := filepath.Join(dir, "grammar")

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetIn(strings.NewReader("a := '' ."))
	cmd.SetArgs([]string{stem})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "string literal is empty")
	assert.Contains(t, err.Error(), "near")
}
