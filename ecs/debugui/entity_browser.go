package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kingfisher/ecs"
)

// EntityInfo is one row of the entity browser.
type EntityInfo struct {
	ID             ecs.EntityId
	ArchetypeID    uint32
	ComponentTypes []string
}

func NewEntityBrowserComponent(maxRows int) EntityBrowserComponent {
	return EntityBrowserComponent{maxRows: maxRows}
}

// Selected returns the entity picked in the browser, or 0.
func (eb *EntityBrowserComponent) Selected() ecs.EntityId {
	return eb.selected
}

func (eb *EntityBrowserComponent) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.filterText = ""
	}

	rows := filterEntities(collectEntities(storage), eb.filterText)
	if eb.selected != 0 && !storage.Exists(eb.selected) {
		eb.selected = 0
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 240), 0) {
		imgui.TableSetupColumn("Entity")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		for _, row := range rows[:min(len(rows), eb.maxRows)] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			if imgui.SelectableBoolV(fmt.Sprintf("%d", row.ID), eb.selected == row.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selected = row.ID
			}
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.ComponentTypes, ", "))
		}
		imgui.EndTable()
	}

	if len(rows) > eb.maxRows {
		imgui.Text(fmt.Sprintf("Showing %d of %d entities", eb.maxRows, len(rows)))
	} else {
		imgui.Text(fmt.Sprintf("%d entities", len(rows)))
	}
	imgui.End()
}

func collectEntities(storage *ecs.Storage) []EntityInfo {
	var rows []EntityInfo
	for archetype := range storage.Archetypes() {
		types := archetype.Types()
		names := make([]string, len(types))
		for i, t := range types {
			names[i] = t.String()
		}
		for id := range archetype.Iter() {
			rows = append(rows, EntityInfo{
				ID:             id,
				ArchetypeID:    archetype.ID(),
				ComponentTypes: names,
			})
		}
	}
	return rows
}

// filterEntities keeps rows whose id or component names contain filter,
// ignoring case.
func filterEntities(rows []EntityInfo, filter string) []EntityInfo {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return rows
	}

	var out []EntityInfo
	for _, row := range rows {
		if strings.Contains(fmt.Sprintf("%d", row.ID), filter) ||
			strings.Contains(strings.ToLower(strings.Join(row.ComponentTypes, " ")), filter) {
			out = append(out, row)
		}
	}
	return out
}
