// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"fmt"
	"net/url"
	"os"

	"github.com/pkg/browser"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/countervm/utils"
)

// Panels of the pre-built dashboard.
var Panels = []string{
	"increase(vm_txs_succeeded[5s])/5",
	"increase(vm_txs_failed[5s])/5",
	"increase(vm_txs_rejected[5s])/5",
	"increase(vm_auth_batch_failures[5s])",
	"increase(vm_tx_execute_sum[5s])/increase(vm_tx_execute_count[5s])/1000000",
	"increase(vm_tx_commit_sum[5s])/increase(vm_tx_commit_count[5s])/1000000",
	"increase(vm_state_changes[5s])/5",
	"increase(pebble_l0_compactions[5s])",
}

type PrometheusStaticConfig struct {
	Targets []string `yaml:"targets"`
}

type PrometheusScrapeConfig struct {
	JobName       string                    `yaml:"job_name"`
	StaticConfigs []*PrometheusStaticConfig `yaml:"static_configs"`
	MetricsPath   string                    `yaml:"metrics_path"`
}

type PrometheusConfig struct {
	Global struct {
		ScrapeInterval     string `yaml:"scrape_interval"`
		EvaluationInterval string `yaml:"evaluation_interval"`
	} `yaml:"global"`
	ScrapeConfigs []*PrometheusScrapeConfig `yaml:"scrape_configs"`
}

// GeneratePrometheus writes a prometheus config that scrapes the configured
// node to [prometheusFile] and returns a link to a pre-built dashboard served
// by prometheus at [baseURI].
func (h *Handler) GeneratePrometheus(
	baseURI string,
	openBrowser bool,
	prometheusFile string,
	prometheusData string,
) (string, error) {
	if len(h.settings.URI) == 0 {
		return "", ErrNoURI
	}
	u, err := url.Parse(h.settings.URI)
	if err != nil {
		return "", err
	}

	// Create Prometheus YAML
	var prometheusConfig PrometheusConfig
	prometheusConfig.Global.ScrapeInterval = "1s"
	prometheusConfig.Global.EvaluationInterval = "1s"
	prometheusConfig.ScrapeConfigs = []*PrometheusScrapeConfig{
		{
			JobName: "countervm",
			StaticConfigs: []*PrometheusStaticConfig{
				{
					Targets: []string{u.Host},
				},
			},
			MetricsPath: "/metrics",
		},
	}
	yamlData, err := yaml.Marshal(&prometheusConfig)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(prometheusFile, yamlData, fsModeWrite); err != nil {
		return "", err
	}

	// We must manually encode the params because prometheus skips any panels
	// that are not numerically sorted and `url.params` only sorts
	// lexicographically.
	dashboard := baseURI + "/graph"
	for i, panel := range Panels {
		appendChar := "&"
		if i == 0 {
			appendChar = "?"
		}
		dashboard = fmt.Sprintf("%s%sg%d.expr=%s&g%d.tab=0&g%d.step_input=1&g%d.range_input=5m", dashboard, appendChar, i, url.QueryEscape(panel), i, i, i)
	}
	utils.Outf("{{orange}}pre-built dashboard:{{/}} %s\n", dashboard)
	utils.Outf("{{green}}prometheus cmd:{{/}} prometheus --config.file=%s --storage.tsdb.path=%s\n", prometheusFile, prometheusData)
	if !openBrowser {
		return dashboard, nil
	}
	return dashboard, browser.OpenURL(dashboard)
}
