package catalog

import (
	"strings"

	"github.com/lithammer/dedent"

	"github.com/shuttle-hq/shuttle-cli/internal/locator"
	"github.com/shuttle-hq/shuttle-cli/internal/manifest"
)

// ExamplesRepository holds every official template.
const ExamplesRepository = "shuttle-hq/shuttle-examples"

// RocketMain is the entry point of the rocket template.
var RocketMain = strings.TrimPrefix(dedent.Dedent(`
		#[macro_use]
		extern crate rocket;

		#[get("/")]
		fn index() -> &'static str {
		    "Hello, world!"
		}

		#[shuttle_runtime::main]
		async fn rocket() -> shuttle_rocket::ShuttleRocket {
		    let rocket = rocket::build().mount("/", routes![index]);

		    Ok(rocket.into())
		}
		`), "\n")

type framework struct {
	name        string
	displayName string
	description string
}

var frameworks = []framework{
	{"actix-web", "Actix Web", "Actix Web HTTP server"},
	{"axum", "Axum", "Axum HTTP server"},
	{"poem", "Poem", "Poem HTTP server"},
	{"poise", "Poise", "Poise Discord bot"},
	{"rocket", "Rocket", "Rocket HTTP server"},
	{"salvo", "Salvo", "Salvo HTTP server"},
	{"serenity", "Serenity", "Serenity Discord bot"},
	{"thruster", "Thruster", "Thruster HTTP server"},
	{"tide", "Tide", "Tide HTTP server"},
	{"tower", "Tower", "Tower service"},
	{"warp", "Warp", "Warp HTTP server"},
}

func officialEntries() []Entry {
	entries := make([]Entry, 0, len(frameworks)+1)
	for _, fw := range frameworks {
		e := Entry{
			Name:        fw.name,
			DisplayName: fw.displayName,
			Description: fw.description,
			Source:      official(fw.name, fw.name+"/hello-world"),
			Expect: Expectation{
				Dependencies: []string{manifest.RuntimeDependency, "shuttle-" + fw.name},
			},
		}
		if fw.name == "rocket" {
			e.Expect.Scaffold = map[string]string{"src/main.rs": RocketMain}
		}
		entries = append(entries, e)
	}

	entries = append(entries, Entry{
		Name:        NoneName,
		DisplayName: "No framework",
		Description: "Custom service without a web framework",
		Source:      official(NoneName, "custom-service/none"),
		Expect: Expectation{
			Dependencies: []string{manifest.RuntimeDependency},
		},
	})
	return entries
}

func official(name, subfolder string) locator.Source {
	return locator.Catalogued(name, locator.Source{
		Origin:    locator.GitShorthand,
		Host:      locator.DefaultHost,
		Address:   ExamplesRepository,
		Subfolder: subfolder,
	})
}
