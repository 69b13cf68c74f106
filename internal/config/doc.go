// Package config defines the crawl configuration, its defaults and
// validation, and the YAML crawl-job file loader.
package config
