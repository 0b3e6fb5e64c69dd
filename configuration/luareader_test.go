// SPDX-License-Identifier: ISC
// Copyright (c) 2019-2020 Chirp Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chirp-network/chirpd/configuration"
)

const testingDirName = "testing"

type testRPC struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections"`
	Listen             []string `gluamapper:"listen"`
}

type testConfiguration struct {
	DataDirectory string  `gluamapper:"data_directory"`
	FeePercent    uint64  `gluamapper:"fee_percent"`
	ClientRPC     testRPC `gluamapper:"client_rpc"`
}

const luaSource = `
local M = {}

M.data_directory = "."
M.fee_percent = tonumber(os.getenv("CHIRPD_TEST_FEE")) or 5

M.client_rpc = {
    maximum_connections = 50,
    listen = {
        "127.0.0.1:2130",
        "[::1]:2130",
    },
}

return M
`

func TestParseConfigurationFile(t *testing.T) {
	_ = os.Mkdir(testingDirName, 0700)
	defer os.RemoveAll(testingDirName)

	fileName := filepath.Join(testingDirName, "test.lua")
	err := ioutil.WriteFile(fileName, []byte(luaSource), 0600)
	require.NoError(t, err, "write configuration")

	os.Setenv("CHIRPD_TEST_FEE", "7")
	defer os.Unsetenv("CHIRPD_TEST_FEE")

	var config testConfiguration
	err = configuration.ParseConfigurationFile(fileName, &config)
	require.NoError(t, err, "parse configuration")

	assert.Equal(t, ".", config.DataDirectory, "data directory")
	assert.Equal(t, uint64(7), config.FeePercent, "environment override")
	assert.Equal(t, uint64(50), config.ClientRPC.MaximumConnections, "maximum connections")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, config.ClientRPC.Listen, "listen addresses")
}

func TestParseMissingFile(t *testing.T) {
	var config testConfiguration
	err := configuration.ParseConfigurationFile("no-such-file.lua", &config)
	assert.Error(t, err, "missing file")
}
