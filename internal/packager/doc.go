// Package packager resolves manifest items into an ordered package and
// assembles them into a single output.
//
// Resolution is a depth-first walk: an item's requires are added before it and
// its provides after it. Items already in the package are skipped, which also
// truncates dependency cycles.
//
//	p, err := packager.Open("./src", packager.PackagerOptions{})
//	if err != nil {
//	    return err
//	}
//	opts := p.DefaultOptions()
//	opts.OutputFile = "build/{name}-{version}.min.js"
//	out, err := p.Package([]string{"js/c"}, opts)
package packager
