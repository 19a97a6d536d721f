package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/arkanoop/engine/assets/loaders"
	"github.com/spaghettifunk/arkanoop/engine/core"
	"github.com/spaghettifunk/arkanoop/engine/renderer/metadata"
)

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetChange is published when a watched asset is created or written.
type AssetChange struct {
	Path string
	Type metadata.ResourceType
}

const changeBacklog = 64

/**
 * @brief Indexes the files of an asset directory, loads them through the
 * registered loaders and watches the directory for changes so shaders and
 * textures can be reloaded while the game runs.
 */
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
	changes  chan AssetChange
}

func NewAssetManager(root string) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		root:     filepath.Clean(root),
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan AssetChange, changeBacklog),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}

	// Register loaders
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(metadata.ResourceTypeBitmapFont, &loaders.BitmapFontLoader{})
	am.registerLoader(metadata.ResourceTypeSystemFont, &loaders.SystemFontLoader{})

	return am, nil
}

// Initialize indexes every file under the root and starts watching it.
func (am *AssetManager) Initialize() error {
	if err := am.addRecursive(am.root); err != nil {
		return err
	}
	am.started = true
	go am.start()
	core.LogInfo("watching %d assets under '%s'", am.Count(), am.root)
	return nil
}

// Shutdown stops the watcher and closes the change channel.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	started := am.started
	am.mutex.Unlock()

	if !started {
		close(am.changes)
		return am.fsnotify.Close()
	}
	close(am.done)
	select {
	case <-am.stopped:
		return nil
	case <-time.After(time.Second):
		return fmt.Errorf("asset watcher did not stop")
	}
}

// Changes delivers created or modified assets. It is closed by Shutdown.
func (am *AssetManager) Changes() <-chan AssetChange {
	return am.changes
}

func (am *AssetManager) Root() string {
	return am.root
}

func (am *AssetManager) Count() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

func (am *AssetManager) Info(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.Clean(path)]
	return info, ok
}

// AddRecursive starts watching the named directory and all sub-directories.
func (am *AssetManager) addRecursive(name string) error {
	if am.isClosed {
		return errors.New("asset watcher already closed")
	}
	return am.watchRecursive(name)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads path with the loader registered for resourceType. Failures
// are returned as *core.AssetError.
func (am *AssetManager) LoadAsset(path string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	path = filepath.Clean(path)

	loader, ok := am.loaders[resourceType]
	if !ok {
		return nil, &core.AssetError{Path: path, Err: fmt.Errorf("no loader registered for asset type: %s", resourceType)}
	}

	res, err := loader.Load(path, resourceType, params)
	if err != nil {
		return nil, &core.AssetError{Path: path, Err: err}
	}

	am.mutex.Lock()
	am.assets[path] = AssetInfo{Path: path, Type: resourceType, LastLoaded: time.Now()}
	am.mutex.Unlock()
	return res, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	if asset == nil {
		return nil
	}
	loader, ok := am.loaders[asset.Type]
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}
	return loader.Unload(asset)
}

// LoadImage decodes an image into the given pixel format.
func (am *AssetManager) LoadImage(path string, format metadata.PixelFormat) (*metadata.ImageResourceData, error) {
	res, err := am.LoadAsset(path, metadata.ResourceTypeImage, &metadata.ImageResourceParams{Format: format})
	if err != nil {
		return nil, err
	}
	return res.Data.(*metadata.ImageResourceData), nil
}

func (am *AssetManager) LoadShaderSource(path string) (string, error) {
	res, err := am.LoadAsset(path, metadata.ResourceTypeShader, nil)
	if err != nil {
		return "", err
	}
	return res.Data.(string), nil
}

// LoadFont loads a .fnt bitmap font, or rasterizes a .ttf/.otf face at size.
func (am *AssetManager) LoadFont(path string, size float64) (*metadata.FontData, error) {
	var (
		res *metadata.Resource
		err error
	)
	if determineAssetType(path) == metadata.ResourceTypeSystemFont {
		res, err = am.LoadAsset(path, metadata.ResourceTypeSystemFont, &metadata.SystemFontParams{Size: size, First: ' ', Last: '~'})
	} else {
		res, err = am.LoadAsset(path, metadata.ResourceTypeBitmapFont, nil)
	}
	if err != nil {
		return nil, err
	}
	return res.Data.(*metadata.FontData), nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	defer close(am.changes)

	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			if e.Op&fsnotify.Create != 0 {
				if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
					if err := am.watchRecursive(e.Name); err != nil {
						core.LogWarn("failed to watch '%s': %v", e.Name, err)
					}
					continue
				}
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if info, ok := am.handleFileEvent(e.Name); ok {
					am.publish(AssetChange{Path: info.Path, Type: info.Type})
				}
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %v", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// publish never blocks the watcher; a full backlog drops the change.
func (am *AssetManager) publish(c AssetChange) {
	select {
	case am.changes <- c:
	default:
		core.LogWarn("asset change backlog full, dropping '%s'", c.Path)
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files it finds.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (AssetInfo, bool) {
	path = filepath.Clean(path)
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return AssetInfo{}, false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := am.assets[path]
	info.Path = path
	info.Type = assetType
	am.assets[path] = info
	return info, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) metadata.ResourceType {
	switch filepath.Ext(path) {
	case ".vert", ".frag", ".glsl":
		return metadata.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".webp":
		return metadata.ResourceTypeImage
	case ".fnt":
		return metadata.ResourceTypeBitmapFont
	case ".ttf", ".otf":
		return metadata.ResourceTypeSystemFont
	case ".toml":
		return metadata.ResourceTypeConfig
	case ".txt":
		return metadata.ResourceTypeText
	default:
		return metadata.ResourceTypeNone
	}
}
