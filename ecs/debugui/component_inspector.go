package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/kingfisher/ecs"
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{}
}

// Render shows every component of the selected entity. Numeric, bool and
// string fields are editable and write straight into storage.
func (ci *ComponentInspectorComponent) Render(storage *ecs.Storage, selected ecs.EntityId) {
	if !imgui.BeginV("Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	ci.selected = selected
	if ci.selected == 0 {
		imgui.Text("No entity selected")
		return
	}

	archetype := storage.GetArchetypeById(ci.selected.ArchetypeId())
	if archetype == nil || !storage.Exists(ci.selected) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", ci.selected))
		return
	}

	imgui.Text(fmt.Sprintf("Entity %d (archetype %d)", ci.selected, archetype.ID()))
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := storage.GetComponent(ci.selected, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			renderValue(reflect.ValueOf(component).Elem(), compType.Name())
			imgui.TreePop()
		}
	}
}

// renderValue draws v. v must be addressable for edits to stick.
func renderValue(v reflect.Value, id string) {
	if v.Kind() != reflect.Struct {
		renderField(v, id, id)
		return
	}
	for _, field := range globalReflectionCache.GetFields(v.Type()) {
		fv := v.Field(field.Index)
		if field.IsPointer {
			if fv.IsNil() {
				imgui.Text(field.Name + ": nil")
				continue
			}
			fv = fv.Elem()
		}
		renderField(fv, field.Name, id+"."+field.Name)
	}
}

func renderField(v reflect.Value, name, id string) {
	label := "##" + id

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := int32(v.Int())
		fieldLabel(name, 150)
		if imgui.InputInt(label, &n) {
			setField(v, int64(n))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n := int32(v.Uint())
		fieldLabel(name, 150)
		if imgui.InputInt(label, &n) && n >= 0 {
			setField(v, uint64(n))
		}

	case reflect.Float32, reflect.Float64:
		f := float32(v.Float())
		fieldLabel(name, 150)
		if imgui.InputFloat(label, &f) {
			setField(v, float64(f))
		}

	case reflect.Bool:
		b := v.Bool()
		if imgui.Checkbox(name+label, &b) {
			setField(v, b)
		}

	case reflect.String:
		s := v.String()
		fieldLabel(name, 200)
		if imgui.InputTextWithHint(label, "", &s, imgui.InputTextFlagsNone, nil) {
			setField(v, s)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			renderValue(v, id)
			imgui.TreePop()
		}

	case reflect.Slice, reflect.Map:
		imgui.Text(fmt.Sprintf("%s: %s (%d)", name, v.Kind(), v.Len()))

	default:
		if v.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, v.Interface()))
		} else {
			imgui.Text(name + ": ?")
		}
	}
}

func fieldLabel(name string, width float32) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(width)
}

// setField writes value into v, converting between numeric kinds. It reports
// whether the write happened.
func setField(v reflect.Value, value any) bool {
	if !v.CanSet() {
		return false
	}
	switch x := value.(type) {
	case int64:
		if !v.CanInt() {
			return false
		}
		v.SetInt(x)
	case uint64:
		if !v.CanUint() {
			return false
		}
		v.SetUint(x)
	case float64:
		if !v.CanFloat() {
			return false
		}
		v.SetFloat(x)
	case bool:
		if v.Kind() != reflect.Bool {
			return false
		}
		v.SetBool(x)
	case string:
		if v.Kind() != reflect.String {
			return false
		}
		v.SetString(x)
	default:
		return false
	}
	return true
}
