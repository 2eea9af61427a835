package uti

// Well-known identifiers.
const (
	TypeItem       = "public.item"
	TypeContent    = "public.content"
	TypeData       = "public.data"
	TypeDirectory  = "public.directory"
	TypeFolder     = "public.folder"
	TypeSymlink    = "public.symlink"
	TypeText       = "public.text"
	TypePlainText  = "public.plain-text"
	TypeImage      = "public.image"
	TypeJPEG       = "public.jpeg"
	TypePNG        = "public.png"
	TypeArchive    = "public.archive"
	TypeZip        = "public.zip-archive"
	TypeDiskImage  = "public.disk-image"
	TypeExecutable = "public.executable"
)

var builtinTypes = []Declaration{
	{Identifier: TypeItem, Description: "item"},
	{Identifier: TypeContent, Description: "content", ConformsTo: []string{TypeItem}},
	{Identifier: TypeData, Description: "data", ConformsTo: []string{TypeItem}},
	{Identifier: TypeDirectory, Description: "directory", ConformsTo: []string{TypeItem}},
	{Identifier: TypeFolder, Description: "folder", ConformsTo: []string{TypeDirectory}},
	{Identifier: TypeSymlink, Description: "symbolic link", ConformsTo: []string{TypeItem}},
	{Identifier: TypeExecutable, Description: "executable", ConformsTo: []string{TypeItem}},

	{Identifier: TypeText, Description: "text", ConformsTo: []string{TypeData, TypeContent}},
	{Identifier: TypePlainText, Description: "plain text", ConformsTo: []string{TypeText}, Extensions: []string{"txt", "text"}},
	{Identifier: "public.source-code", Description: "source code", ConformsTo: []string{TypePlainText}},
	{Identifier: "public.make-source", Description: "makefile", ConformsTo: []string{"public.source-code"},
		Extensions: []string{"mk"}, Patterns: []string{"Makefile", "GNUmakefile", "makefile"}},
	{Identifier: "org.golang.go-source", Description: "Go source", ConformsTo: []string{"public.source-code"}, Extensions: []string{"go"}},
	{Identifier: "public.shell-script", Description: "shell script", ConformsTo: []string{"public.source-code"}, Extensions: []string{"sh", "command"}},
	{Identifier: "public.json", Description: "JSON", ConformsTo: []string{TypeText}, Extensions: []string{"json"}},
	{Identifier: "public.xml", Description: "XML", ConformsTo: []string{TypeText}, Extensions: []string{"xml"}},
	{Identifier: "public.yaml", Description: "YAML", ConformsTo: []string{TypeText}, Extensions: []string{"yaml", "yml"}},
	{Identifier: "public.html", Description: "HTML", ConformsTo: []string{TypeText}, Extensions: []string{"html", "htm"}},

	{Identifier: TypeImage, Description: "image", ConformsTo: []string{TypeData, TypeContent}},
	{Identifier: TypeJPEG, Description: "JPEG image", ConformsTo: []string{TypeImage}, Extensions: []string{"jpeg", "jpg", "jpe"}},
	{Identifier: TypePNG, Description: "PNG image", ConformsTo: []string{TypeImage}, Extensions: []string{"png"}},
	{Identifier: "com.compuserve.gif", Description: "GIF image", ConformsTo: []string{TypeImage}, Extensions: []string{"gif"}},
	{Identifier: "public.tiff", Description: "TIFF image", ConformsTo: []string{TypeImage}, Extensions: []string{"tiff", "tif"}},
	{Identifier: "com.microsoft.bmp", Description: "BMP image", ConformsTo: []string{TypeImage}, Extensions: []string{"bmp"}},
	{Identifier: "public.svg-image", Description: "SVG image", ConformsTo: []string{TypeImage, "public.xml"}, Extensions: []string{"svg"}},

	{Identifier: "public.audiovisual-content", Description: "audiovisual content", ConformsTo: []string{TypeData, TypeContent}},
	{Identifier: "public.movie", Description: "movie", ConformsTo: []string{"public.audiovisual-content"}},
	{Identifier: "public.audio", Description: "audio", ConformsTo: []string{"public.audiovisual-content"}},
	{Identifier: "public.mp3", Description: "MP3 audio", ConformsTo: []string{"public.audio"}, Extensions: []string{"mp3"}},
	{Identifier: "com.microsoft.waveform-audio", Description: "WAVE audio", ConformsTo: []string{"public.audio"}, Extensions: []string{"wav", "wave"}},
	{Identifier: "public.mpeg-4", Description: "MPEG-4 movie", ConformsTo: []string{"public.movie"}, Extensions: []string{"mp4"}},
	{Identifier: "com.apple.quicktime-movie", Description: "QuickTime movie", ConformsTo: []string{"public.movie"}, Extensions: []string{"mov", "qt"}},

	{Identifier: TypeArchive, Description: "archive", ConformsTo: []string{TypeData}},
	{Identifier: TypeZip, Description: "ZIP archive", ConformsTo: []string{TypeArchive}, Extensions: []string{"zip"}},
	{Identifier: "public.tar-archive", Description: "tar archive", ConformsTo: []string{TypeArchive}, Extensions: []string{"tar"}},
	{Identifier: "org.gnu.gnu-zip-archive", Description: "gzip archive", ConformsTo: []string{TypeArchive}, Extensions: []string{"gz", "gzip"}},
	{Identifier: "org.gnu.gnu-zip-tar-archive", Description: "gzip tar archive", ConformsTo: []string{TypeArchive}, Extensions: []string{"tgz", "tar.gz"}},
	{Identifier: "public.bzip2-archive", Description: "bzip2 archive", ConformsTo: []string{TypeArchive}, Extensions: []string{"bz2"}},
	{Identifier: "org.tukaani.xz-archive", Description: "xz archive", ConformsTo: []string{TypeArchive}, Extensions: []string{"xz"}},
	{Identifier: "org.7-zip.7-zip-archive", Description: "7-Zip archive", ConformsTo: []string{TypeArchive}, Extensions: []string{"7z"}},
	{Identifier: "com.rarlab.rar-archive", Description: "RAR archive", ConformsTo: []string{TypeArchive}, Extensions: []string{"rar"}},

	{Identifier: TypeDiskImage, Description: "disk image", ConformsTo: []string{TypeData}},
	{Identifier: "public.iso-image", Description: "ISO disc image", ConformsTo: []string{TypeDiskImage}, Extensions: []string{"iso"}},
	{Identifier: "com.goldenhawk.cdrwin-cuesheet", Description: "CUE sheet", ConformsTo: []string{TypePlainText}, Extensions: []string{"cue"}},
	{Identifier: "public.floppy-image", Description: "floppy disk image", ConformsTo: []string{TypeDiskImage}, Extensions: []string{"img", "ima", "vfd"}},

	{Identifier: "com.adobe.pdf", Description: "PDF document", ConformsTo: []string{TypeData, TypeContent}, Extensions: []string{"pdf"}},
	{Identifier: "com.microsoft.windows-executable", Description: "Windows executable", ConformsTo: []string{TypeData, TypeExecutable}, Extensions: []string{"exe"}},
	{Identifier: "com.microsoft.msdos-executable", Description: "DOS executable", ConformsTo: []string{TypeData, TypeExecutable}, Extensions: []string{"com"}},
	{Identifier: "com.microsoft.batch-file", Description: "DOS batch file", ConformsTo: []string{TypePlainText, TypeExecutable}, Extensions: []string{"bat"}},
}

// Default returns a new registry seeded with the built-in types.
func Default() *Registry {
	r := New()
	for _, d := range builtinTypes {
		if err := r.Declare(d); err != nil {
			panic(err)
		}
	}
	return r
}
