/*
Package workbench is a toolkit of small, stateless utility tools: word counter, case converter, unit, BMI and age calculators, password generator, URL and Base64 codecs, JSON formatter, QR generator, text to PDF, JPG/PNG conversion and text to image.

Every tool is a pure transformation from user input to a derived output. Tools are registered under an identifier, run through input validation, and always come back as exactly one Result: a Success carrying the output, or a Failure carrying a human-readable message.

# Concept

The toolkit is split into panels, one per tool family, and exactly one panel is active at a time. The front ends (CLI, HTTP API, MCP server) are thin adapters: they collect input, call Run, and present the Result. PDF rendering, QR encoding, image codecs and the clipboard are collaborators behind narrow interfaces in pkg/ports.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/workbench"
		"github.com/aretw0/workbench/pkg/domain"
	)

	func main() {
		wb, err := workbench.New()
		if err != nil {
			log.Fatal(err)
		}

		res := wb.Run(context.Background(), "bmi", domain.Input{"weight": "70", "height": "175"})
		fmt.Println(res.Text()) // BMI: 22.9 (Normal)
	}
*/
package workbench
