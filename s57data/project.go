package s57data

import "github.com/navchart/s52gl/proj"

// ProjectGeoToXY batch-projects all of the feature's rings/line/point from
// geographic to projected coordinates in place (spec §6.2
// project_geo_to_xy). Returns proj.ErrNotSet if m has no origin yet.
func (f *Feature) ProjectGeoToXY(m *proj.Mercator) error {
	switch f.Kind {
	case Point:
		x, y, err := m.Forward(f.Point.X, f.Point.Y)
		if err != nil {
			return err
		}
		f.Point.X, f.Point.Y = x, y
	case Line:
		for i, p := range f.Line {
			x, y, err := m.Forward(p.X, p.Y)
			if err != nil {
				return err
			}
			f.Line[i].X, f.Line[i].Y = x, y
		}
	case Area:
		for ri := range f.Rings {
			for i, p := range f.Rings[ri].Points {
				x, y, err := m.Forward(p.X, p.Y)
				if err != nil {
					return err
				}
				f.Rings[ri].Points[i].X, f.Rings[ri].Points[i].Y = x, y
			}
		}
	}
	return nil
}
