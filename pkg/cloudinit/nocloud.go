// Copyright 2024 Alexandre Mahdhaoui
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cloudinit

import (
	"errors"

	"sigs.k8s.io/yaml"
)

// MetaData is the NoCloud meta-data document.
type MetaData struct {
	InstanceID    string `json:"instance-id"`
	LocalHostname string `json:"local-hostname"`
}

func (md MetaData) Render() (string, error) {
	b, err := yaml.Marshal(md)
	if err != nil {
		return "", errors.Join(err, ErrRender)
	}

	return string(b), nil
}

// ---------------------------------------------------- NETWORK ----------------------------------------------------- //

// NetworkConfig is a netplan v2 network-config document.
type NetworkConfig struct {
	Network Network `json:"network"`
}

type Network struct {
	Version   int                 `json:"version"`
	Ethernets map[string]Ethernet `json:"ethernets"`
}

type Ethernet struct {
	Match          *Match `json:"match,omitempty"`
	DHCP4          bool   `json:"dhcp4"`
	DHCPIdentifier string `json:"dhcp-identifier,omitempty"`
}

type Match struct {
	Name       string `json:"name,omitempty"`
	MACAddress string `json:"macaddress,omitempty"`
}

// NewDHCPNetworkConfig returns a network-config enabling DHCPv4 on every interface whose name matches namePattern.
// The DHCP client identifies itself with its MAC address, so a pinned MAC yields a stable lease.
func NewDHCPNetworkConfig(namePattern string) NetworkConfig {
	return NetworkConfig{
		Network: Network{
			Version: 2,
			Ethernets: map[string]Ethernet{
				"all": {
					Match:          &Match{Name: namePattern},
					DHCP4:          true,
					DHCPIdentifier: "mac",
				},
			},
		},
	}
}

func (nc NetworkConfig) Render() (string, error) {
	b, err := yaml.Marshal(nc)
	if err != nil {
		return "", errors.Join(err, ErrRender)
	}

	return string(b), nil
}
