package cmd

import (
	"bytes"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/scene"
)

// ListScenes lists the built-in presets and the scene files found in --dir.
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	scenes, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	logger.Noticef("available scenes\n%s", formatSceneTable(scenes))
	return nil
}

func formatSceneTable(scenes []scene.SceneInfo) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Type", "Description", "Path"})
	for _, info := range scenes {
		table.Append([]string{info.Name, info.Type, info.Description, info.FilePath})
	}
	table.Render()
	return buf.String()
}
