/*
Copyright 2024 Alexandre Mahdhaoui

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/alexandremahdhaoui/machina/internal/types"
)

// Format is an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

var errInvalidFormat = errors.New("invalid output format")

func validateFormat(s string) error {
	switch Format(s) {
	case FormatTable, FormatJSON, FormatYAML:
		return nil
	default:
		return errors.Join(fmt.Errorf("format=%q (valid formats: table, json, yaml)", s), errInvalidFormat)
	}
}

// printMachines writes machines in the given format. A list is printed as an array in json and yaml.
func printMachines(w io.Writer, format Format, list bool, machines ...types.Machine) error {
	var v any = machines
	if !list && len(machines) == 1 {
		v = machines[0]
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(v)
	case FormatYAML:
		b, err := yaml.Marshal(v)
		if err != nil {
			return err
		}

		_, err = w.Write(b)

		return err
	case FormatTable:
		return printTable(w, machines)
	default:
		return validateFormat(string(format))
	}
}

func printTable(w io.Writer, machines []types.Machine) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)

	_, _ = fmt.Fprintln(tw, "ID\tNAME\tVCPU\tMEMORY\tDISK\tIMAGE\tIP")

	for _, m := range machines {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\n",
			m.ID,
			m.Name,
			m.VCPU,
			strconv.Itoa(m.Memory)+"Mi",
			strconv.Itoa(m.DiskSize)+"G",
			m.BaseImage,
			ptr.Deref(m.ResolvedIP, "<none>"),
		)
	}

	return tw.Flush()
}
