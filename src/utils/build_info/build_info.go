// Values set upon build with -ldflags "-X ..."
package build_info

var (
	Version = "dev"
)
