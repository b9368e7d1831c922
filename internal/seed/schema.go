package seed

// SiteEntry is a single site under a category in the seed YAML.
type SiteEntry struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`
}

// CategoryEntry is a named category with its sites.
type CategoryEntry struct {
	Name  string      `yaml:"name"`
	Sites []SiteEntry `yaml:"sites"`
}

// File is the root structure of the seed file:
//
//	categories:
//	  - name: Work
//	    sites:
//	      - name: GitHub
//	        url: https://github.com
//	        icon: "<i class=\"icon-github\"></i>"
type File struct {
	Categories []CategoryEntry `yaml:"categories"`
}
