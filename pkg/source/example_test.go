package source_test

import (
	"fmt"

	"github.com/matzehuels/reqconv/pkg/source"
)

func ExampleBuildArgs() {
	args := source.BuildArgs([]source.Index{
		{Name: "pypi", URL: "https://pypi.org/simple"},
		{Name: "mirror", URL: "http://mirror.local:8080/simple", VerifySSL: source.Bool(false)},
	})
	for _, a := range args {
		fmt.Println(a)
	}
	// Output:
	// -i
	// https://pypi.org/simple
	// --extra-index-url
	// http://mirror.local:8080/simple
	// --trusted-host
	// mirror.local
}

func ExampleHost() {
	fmt.Println(source.Host("https://user:pw@private.example.com:8443/simple"))
	// Output:
	// private.example.com
}
