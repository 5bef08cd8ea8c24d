// Package configs for work with configurations
package configs

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Conf for config yaml
type Conf struct {
	Show  Show `yaml:"show"`
	Store struct {
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
		Key    string `yaml:"key"`
	} `yaml:"store"`
	Autosave struct {
		Delay time.Duration `yaml:"delay"`
	} `yaml:"autosave"`
	Defaults struct {
		Timestamps Timestamps `yaml:"timestamps"`
	} `yaml:"defaults"`
	Export struct {
		Folder     string `yaml:"folder"`
		Recordings string `yaml:"recordings"`
		PDF        struct {
			Margin      float64 `yaml:"margin"`
			Unit        string  `yaml:"unit"`
			Page        string  `yaml:"page"`
			Orientation string  `yaml:"orientation"`
		} `yaml:"pdf"`
	} `yaml:"export"`
	Toast struct {
		Duration time.Duration `yaml:"duration"`
	} `yaml:"toast"`
	CloudStorage struct {
		Enabled     bool   `yaml:"enabled"`
		EndPointURL string `yaml:"endpoint_url"`
		Bucket      string `yaml:"bucket"`
		Region      string `yaml:"region"`
		UseSSL      bool   `yaml:"use_ssl"`
		Secrets     struct {
			Key    string `yaml:"aws_key"`
			Secret string `yaml:"aws_secret"`
		} `yaml:"secrets"`
	} `yaml:"cloud_storage"`
}

// Show defines branding of the planned show
type Show struct {
	Name            string `yaml:"name"`
	Tagline         string `yaml:"tagline"`
	Opening         string `yaml:"opening"`
	CommunityPrompt string `yaml:"community_prompt"`
	Signature       string `yaml:"signature"`
	FilePrefix      string `yaml:"file_prefix"`
}

// Timestamps are default segment times of a clean form
type Timestamps struct {
	News      []string `yaml:"news"`
	TechTalk  string   `yaml:"tech_talk"`
	Tutorial  string   `yaml:"tutorial"`
	Community string   `yaml:"community"`
}

// Load config from file, unset values get defaults
func Load(fileName string) (res *Conf, err error) {
	res = &Conf{}
	data, err := os.ReadFile(fileName) // nolint
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, res); err != nil {
		return nil, err
	}
	res.SetDefaults()
	return res, nil
}

// Default config used when no config file exists
func Default() *Conf {
	res := &Conf{}
	res.SetDefaults()
	return res
}

// SetDefaults fills unset values
func (c *Conf) SetDefaults() {
	def := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}

	def(&c.Show.Name, "SLICEIX LIVE")
	def(&c.Show.Tagline, "The Ultimate Web3 Music Livestream 🚀")
	def(&c.Show.Opening, "Scene Setting & Web3 Music News")
	def(&c.Show.CommunityPrompt, "Live Q&A and community feedback session")
	def(&c.Show.Signature, "Generated by "+c.Show.Name+" Episode Planner")
	def(&c.Show.FilePrefix, "SLICEIX")

	def(&c.Store.Driver, "bolt")
	def(&c.Store.Path, "var/epiplan.bdb")
	def(&c.Store.Key, "sliceix-episodes")

	if c.Autosave.Delay <= 0 {
		c.Autosave.Delay = 2 * time.Second
	}
	if c.Toast.Duration <= 0 {
		c.Toast.Duration = 3 * time.Second
	}

	ts := &c.Defaults.Timestamps
	news := []string{"15:00", "25:00", "35:00"}
	for i := range news {
		if i < len(ts.News) && ts.News[i] != "" {
			news[i] = ts.News[i]
		}
	}
	ts.News = news
	def(&ts.TechTalk, "40:00")
	def(&ts.Tutorial, "50:00")
	def(&ts.Community, "1:05:00")

	def(&c.Export.Folder, "exports")
	def(&c.Export.Recordings, "recordings")
	if c.Export.PDF.Margin <= 0 {
		c.Export.PDF.Margin = 1
	}
	def(&c.Export.PDF.Unit, "in")
	def(&c.Export.PDF.Page, "Letter")
	def(&c.Export.PDF.Orientation, "P")
}
