package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/tactile/attribute"
	"github.com/milk9111/tactile/editor"
	"github.com/milk9111/tactile/layer"
	"github.com/milk9111/tactile/tile"
	"github.com/milk9111/tactile/tilemap"
)

// simpleEvents are exposed as zero-argument functions.
var simpleEvents = map[string]editor.Event{
	"add_row":       editor.AddRowEvent{},
	"add_column":    editor.AddColumnEvent{},
	"remove_row":    editor.RemoveRowEvent{},
	"remove_column": editor.RemoveColumnEvent{},
	"fix_tiles":     editor.FixTilesInMapEvent{},
	"undo":          editor.UndoEvent{},
	"redo":          editor.RedoEvent{},
	"reset_zoom":    editor.ResetZoomEvent{},
	"center":        editor.CenterViewportEvent{},
}

func buildEditorModule(app *editor.App) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	handle := func(evt editor.Event) tengo.Object {
		return result(app.Handle(evt))
	}

	for name, evt := range simpleEvents {
		event := evt
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			return handle(event), nil
		}}
	}

	values["can_undo"] = &tengo.UserFunction{Name: "can_undo", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(app.CanUndo()), nil
	}}

	values["can_redo"] = &tengo.UserFunction{Name: "can_redo", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(app.CanRedo()), nil
	}}

	values["is_clean"] = &tengo.UserFunction{Name: "is_clean", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(app.IsClean()), nil
	}}

	values["resize"] = &tengo.UserFunction{Name: "resize", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, err := intArgs("resize", args, 2)
		if err != nil {
			return nil, err
		}
		return handle(editor.ResizeMapEvent{Rows: ints[0], Cols: ints[1]}), nil
	}}

	values["extent"] = &tengo.UserFunction{Name: "extent", Value: func(args ...tengo.Object) (tengo.Object, error) {
		doc, err := app.ActiveDocument()
		if err != nil {
			return result(err), nil
		}
		ext := doc.Map.Extent
		return &tengo.Array{Value: []tengo.Object{&tengo.Int{Value: int64(ext.Rows)}, &tengo.Int{Value: int64(ext.Cols)}}}, nil
	}}

	values["get_tile"] = &tengo.UserFunction{Name: "get_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, err := intArgs("get_tile", args, 2)
		if err != nil {
			return nil, err
		}
		l, err := activeTileLayer(app)
		if err != nil {
			return result(err), nil
		}
		return &tengo.Int{Value: int64(l.Tiles.At(tile.Pos{Row: ints[0], Col: ints[1]}))}, nil
	}}

	values["set_tile"] = &tengo.UserFunction{Name: "set_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, err := intArgs("set_tile", args, 3)
		if err != nil {
			return nil, err
		}
		l, err := activeTileLayer(app)
		if err != nil {
			return result(err), nil
		}
		cells := map[tile.Pos]tile.ID{{Row: ints[0], Col: ints[1]}: tile.ID(ints[2])}
		return handle(editor.StampSequenceEvent{Layer: l.ID, Cells: cells}), nil
	}}

	values["erase_tile"] = &tengo.UserFunction{Name: "erase_tile", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, err := intArgs("erase_tile", args, 2)
		if err != nil {
			return nil, err
		}
		l, err := activeTileLayer(app)
		if err != nil {
			return result(err), nil
		}
		return handle(editor.EraserSequenceEvent{Layer: l.ID, Positions: []tile.Pos{{Row: ints[0], Col: ints[1]}}}), nil
	}}

	values["fill"] = &tengo.UserFunction{Name: "fill", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, err := intArgs("fill", args, 3)
		if err != nil {
			return nil, err
		}
		l, err := activeTileLayer(app)
		if err != nil {
			return result(err), nil
		}
		return handle(editor.FloodEvent{Layer: l.ID, Origin: tile.Pos{Row: ints[0], Col: ints[1]}, Replacement: tile.ID(ints[2])}), nil
	}}

	values["add_layer"] = &tengo.UserFunction{Name: "add_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		kind, err := parseLayerKind(objectAsString(args[0]))
		if err != nil {
			return result(err), nil
		}
		if err := app.Handle(editor.AddLayerEvent{Kind: kind}); err != nil {
			return result(err), nil
		}
		doc, _ := app.ActiveDocument()
		return &tengo.String{Value: doc.Map.ActiveLayer.String()}, nil
	}}

	values["layers"] = &tengo.UserFunction{Name: "layers", Value: func(args ...tengo.Object) (tengo.Object, error) {
		doc, err := app.ActiveDocument()
		if err != nil {
			return result(err), nil
		}
		out := &tengo.Array{}
		doc.Map.Root.Each(func(l *layer.Layer) bool {
			if l == doc.Map.Root {
				return true
			}
			out.Value = append(out.Value, &tengo.ImmutableMap{Value: map[string]tengo.Object{
				"id":      &tengo.String{Value: l.ID.String()},
				"name":    &tengo.String{Value: l.Name},
				"kind":    &tengo.String{Value: l.Kind.String()},
				"visible": boolObject(l.Visible),
			}})
			return true
		})
		return out, nil
	}}

	values["select_layer"] = &tengo.UserFunction{Name: "select_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		id, err := idArg(args)
		if err != nil {
			return result(err), nil
		}
		return handle(editor.SelectLayerEvent{Layer: id}), nil
	}}

	values["rename_layer"] = &tengo.UserFunction{Name: "rename_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		id, err := idArg(args)
		if err != nil {
			return result(err), nil
		}
		return handle(editor.RenameLayerEvent{Layer: id, Name: objectAsString(args[1])}), nil
	}}

	values["remove_layer"] = &tengo.UserFunction{Name: "remove_layer", Value: func(args ...tengo.Object) (tengo.Object, error) {
		id, err := idArg(args)
		if err != nil {
			return result(err), nil
		}
		return handle(editor.RemoveLayerEvent{Layer: id}), nil
	}}

	values["set_encoding"] = &tengo.UserFunction{Name: "set_encoding", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		enc, err := tilemap.ParseEncoding(objectAsString(args[0]))
		if err != nil {
			return result(err), nil
		}
		return handle(editor.SetTileFormatEncodingEvent{Encoding: enc}), nil
	}}

	values["set_compression"] = &tengo.UserFunction{Name: "set_compression", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		c, err := tilemap.ParseCompression(objectAsString(args[0]))
		if err != nil {
			return result(err), nil
		}
		return handle(editor.SetTileFormatCompressionEvent{Compression: c}), nil
	}}

	values["set_zlib_level"] = &tengo.UserFunction{Name: "set_zlib_level", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, err := intArgs("set_zlib_level", args, 1)
		if err != nil {
			return nil, err
		}
		return handle(editor.SetZlibCompressionLevelEvent{Level: ints[0]}), nil
	}}

	values["set_zstd_level"] = &tengo.UserFunction{Name: "set_zstd_level", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ints, err := intArgs("set_zstd_level", args, 1)
		if err != nil {
			return nil, err
		}
		return handle(editor.SetZstdCompressionLevelEvent{Level: ints[0]}), nil
	}}

	values["set_property"] = &tengo.UserFunction{Name: "set_property", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return nil, tengo.ErrWrongNumArguments
		}
		return result(setMapProperty(app, objectAsString(args[0]), objectAsString(args[1]), objectAsString(args[2]))), nil
	}}

	values["get_property"] = &tengo.UserFunction{Name: "get_property", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		doc, err := app.ActiveDocument()
		if err != nil {
			return result(err), nil
		}
		v, ok := doc.Map.Properties.Get(objectAsString(args[0]))
		if !ok {
			return tengo.UndefinedValue, nil
		}
		return &tengo.String{Value: v.String()}, nil
	}}

	values["save"] = &tengo.UserFunction{Name: "save", Value: func(args ...tengo.Object) (tengo.Object, error) {
		path := ""
		if len(args) > 0 {
			path = objectAsString(args[0])
		}
		return result(app.SaveMap(path)), nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		app.Logger.Printf("script: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func activeTileLayer(app *editor.App) (*layer.Layer, error) {
	doc, err := app.ActiveDocument()
	if err != nil {
		return nil, err
	}
	l, ok := doc.Map.TileLayer(doc.Map.ActiveLayer)
	if !ok {
		return nil, fmt.Errorf("script: active layer is not a tile layer")
	}
	return l, nil
}

// setMapProperty creates the map property when missing and then assigns it.
// Both steps are separate history entries.
func setMapProperty(app *editor.App, name, typeName, raw string) error {
	doc, err := app.ActiveDocument()
	if err != nil {
		return err
	}
	typ, err := attribute.ParseType(typeName)
	if err != nil {
		return err
	}
	value, err := attribute.Parse(typ, raw)
	if err != nil {
		return err
	}
	ctx := doc.Map.ID
	if current, ok := doc.Map.Properties.Get(name); !ok {
		if err := app.Handle(editor.CreatePropertyEvent{Context: ctx, Name: name, Type: typ}); err != nil {
			return err
		}
	} else if current.Type() != typ {
		if err := app.Handle(editor.ChangePropertyTypeEvent{Context: ctx, Name: name, Type: typ}); err != nil {
			return err
		}
	}
	return app.Handle(editor.UpdatePropertyEvent{Context: ctx, Name: name, Value: value})
}

func parseLayerKind(s string) (layer.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tile":
		return layer.TileLayer, nil
	case "object":
		return layer.ObjectLayer, nil
	case "group":
		return layer.GroupLayer, nil
	}
	return 0, fmt.Errorf("script: unknown layer kind %q", s)
}
